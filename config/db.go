package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"altailand-backend/models"
	"altailand-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "altailand_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the MySQL connection. The handle is returned to
// the caller and injected into every service; there is deliberately no
// package-level *gorm.DB.
func ConnectDatabase() (*gorm.DB, error) {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	return gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
}

// Migrate runs AutoMigrate for every table, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.AdminSession{},
		&models.Image{},
		&models.LandPlot{},
		&models.QuizQuestion{},
		&models.Request{},
		&models.ContactInfo{},
		&models.Visitor{},
	)
}

// SeedDatabase fills in reference data on an empty database: the default
// quiz questions, the contact card placeholder and, when ADMIN_USERNAME /
// ADMIN_PASSWORD are set, the first admin account. Seeding failures are
// logged, not fatal.
func SeedDatabase(db *gorm.DB) {
	var questionCount int64
	db.Model(&models.QuizQuestion{}).Count(&questionCount)
	if questionCount == 0 {
		questions := []models.QuizQuestion{
			{
				Question:  "Какой тип участка вас интересует?",
				Options:   mustJSON([]string{"ИЖС", "СНТ", "ЛПХ", "Пока не определился"}),
				SortOrder: 1,
				IsActive:  true,
			},
			{
				Question:  "В каком районе хотите приобрести участок?",
				Options:   mustJSON([]string{"Чемальский", "Майминский", "Турочакский", "Рассмотрю все варианты"}),
				SortOrder: 2,
				IsActive:  true,
			},
			{
				Question:  "Какая площадь участка вас интересует?",
				Options:   mustJSON([]string{"До 10 соток", "10-15 соток", "15-20 соток", "Более 20 соток"}),
				SortOrder: 3,
				IsActive:  true,
			},
			{
				Question:  "Какой бюджет планируете выделить на покупку?",
				Options:   mustJSON([]string{"До 1 млн", "1-2 млн", "2-3 млн", "Более 3 млн"}),
				SortOrder: 4,
				IsActive:  true,
			},
		}
		if err := db.Create(&questions).Error; err != nil {
			log.Printf("warning: failed to seed quiz questions: %v", err)
		} else {
			log.Println("Quiz questions seeded")
		}
	}

	var contactCount int64
	db.Model(&models.ContactInfo{}).Count(&contactCount)
	if contactCount == 0 {
		contact := models.ContactInfo{
			Phone:   "+7 (XXX) XXX-XX-XX",
			Email:   "example@example.com",
			Address: "Адрес компании",
			WorkHours: mustJSON(map[string]string{
				"monday_friday":   "09:00 - 18:00",
				"saturday_sunday": "Выходной",
			}),
			SocialLinks: mustJSON(map[string]interface{}{
				"whatsapp": map[string]interface{}{"enabled": false, "username": ""},
				"telegram": map[string]interface{}{"enabled": false, "username": ""},
				"vk":       map[string]interface{}{"enabled": false, "username": ""},
			}),
		}
		if err := db.Create(&contact).Error; err != nil {
			log.Printf("warning: failed to seed contact info: %v", err)
		} else {
			log.Println("Contact info seeded")
		}
	}

	username := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	password := os.Getenv("ADMIN_PASSWORD")
	if username != "" && password != "" {
		var adminCount int64
		db.Model(&models.Admin{}).Where("username = ?", username).Count(&adminCount)
		if adminCount == 0 {
			hash, err := utils.HashPassword(password)
			if err != nil {
				log.Printf("warning: failed to hash admin password: %v", err)
			} else {
				admin := models.Admin{Username: username, HashedPassword: hash, IsActive: true}
				if err := db.Create(&admin).Error; err != nil {
					log.Printf("warning: failed to seed admin %s: %v", username, err)
				} else {
					log.Printf("Admin %s seeded", username)
				}
			}
		}
	}
}

func mustJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("seed data marshal: %v", err)
	}
	return datatypes.JSON(b)
}
