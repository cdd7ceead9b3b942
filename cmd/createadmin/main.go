// Command createadmin bootstraps an administrator account, typically the
// first one on a fresh deployment.
//
//	createadmin -username admin -password secret
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"altailand-backend/config"
	"altailand-backend/services"
)

func main() {
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("❌ both -username and -password are required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("❌ Database migration failed: %v", err)
	}

	admin, err := services.NewAuthService(db).CreateAdmin(*username, *password)
	if err != nil {
		log.Fatalf("❌ Create admin failed: %v", err)
	}
	log.Printf("✅ Admin %q created (id=%d)", admin.Username, admin.ID)
}
