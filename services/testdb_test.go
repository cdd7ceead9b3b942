package services

import (
	"testing"

	"altailand-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Admin{},
		&models.AdminSession{},
		&models.LandPlot{},
		&models.Image{},
		&models.Request{},
		&models.QuizQuestion{},
		&models.ContactInfo{},
		&models.Visitor{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func mustCreatePlot(t *testing.T, db *gorm.DB, title string) *models.LandPlot {
	t.Helper()

	plot := models.LandPlot{
		Title:            title,
		Description:      models.Description{Text: "test plot"},
		CadastralNumbers: models.StringList{"04:01:010101:1"},
		Area:             10,
		Price:            1_000_000,
		PricePerSotka:    100_000,
		Location:         "Chemal",
		Region:           "Altai Republic",
		LandCategory:     "IZHS",
		PermittedUse:     "housing",
		Status:           models.PlotStatusAvailable,
		IsVisible:        true,
	}
	if err := db.Create(&plot).Error; err != nil {
		t.Fatalf("create plot: %v", err)
	}
	return &plot
}

// mustAttachImage creates an image row and links it to the plot.
func mustAttachImage(t *testing.T, svc *ImageService, plotID uint, filename string, order int) *models.Image {
	t.Helper()

	image, err := svc.Create(filename, "/images/"+filename, order)
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	ok, err := svc.Attach(plotID, image.ID)
	if err != nil {
		t.Fatalf("attach image: %v", err)
	}
	if !ok {
		t.Fatalf("attach image: plot %d or image %d missing", plotID, image.ID)
	}
	return image
}
