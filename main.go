package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"altailand-backend/config"
	"altailand-backend/controllers"
	"altailand-backend/routes"
	"altailand-backend/services"
	"altailand-backend/telegram"
)

func main() {
	// Load .env (optional)
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
	config.SeedDatabase(db)
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	authService := services.NewAuthService(db)
	plotService := services.NewPlotService(db)
	imageService := services.NewImageService(db)
	requestService := services.NewRequestService(db)
	quizService := services.NewQuizService(db)
	contactService := services.NewContactService(db)
	statsService := services.NewStatsService(db)
	notifier := telegram.NewNotifierFromEnv()

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	plotController := controllers.NewPlotController(plotService, imageService)
	requestController := controllers.NewRequestController(requestService, notifier)
	quizController := controllers.NewQuizController(quizService, requestService, notifier)
	contactController := controllers.NewContactController(contactService)
	adminController := controllers.NewAdminController(statsService)

	// Build router
	router := routes.SetupRouter(
		authService,
		authController,
		plotController,
		requestController,
		quizController,
		contactController,
		adminController,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
