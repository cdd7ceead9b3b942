package services

import (
	"errors"
	"fmt"
	"log"
	"os"

	"altailand-backend/models"

	"gorm.io/gorm"
)

// ImageOrder is one entry of a reorder payload.
type ImageOrder struct {
	ID     uint `json:"id"`
	Order  int  `json:"order"`
	IsMain bool `json:"is_main"`
}

// ImageService maintains the ordered image collection of each plot.
// Invariant: a plot with at least one image has exactly one main image.
// SetMain and Reorder keep it by running clear-then-set inside a single
// transaction; the bulk UPDATEs take row locks on the plot's image rows,
// so two mutations of the same plot serialize while different plots
// never block each other.
type ImageService struct {
	DB *gorm.DB
}

func NewImageService(db *gorm.DB) *ImageService {
	return &ImageService{DB: db}
}

// plotImageIDs is the subquery "images attached to this plot".
func (s *ImageService) plotImageIDs(tx *gorm.DB, plotID uint) *gorm.DB {
	return tx.Table("plot_images").Select("image_id").Where("plot_id = ?", plotID)
}

// Create inserts an image row. A negative order means append: the new
// image goes after the current maximum so uploads land at the end by
// default.
func (s *ImageService) Create(filename, path string, order int) (*models.Image, error) {
	if order < 0 {
		var max *int
		if err := s.DB.Model(&models.Image{}).Select("MAX(sort_order)").Scan(&max).Error; err != nil {
			return nil, fmt.Errorf("max sort_order: %w", err)
		}
		if max == nil {
			order = 0
		} else {
			order = *max + 1
		}
	}

	image := models.Image{Filename: filename, Path: path, SortOrder: order}
	if err := s.DB.Create(&image).Error; err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	return &image, nil
}

func (s *ImageService) Get(imageID uint) (*models.Image, error) {
	var image models.Image
	if err := s.DB.First(&image, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

// Attach links an existing image to a plot. Returns false when either
// side is missing; the caller decides whether that is an error. Ordering
// and the main flag are untouched.
func (s *ImageService) Attach(plotID, imageID uint) (bool, error) {
	var plot models.LandPlot
	if err := s.DB.First(&plot, plotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("lookup plot: %w", err)
	}

	var image models.Image
	if err := s.DB.First(&image, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("lookup image: %w", err)
	}

	if err := s.DB.Model(&plot).Association("Images").Append(&image); err != nil {
		return false, fmt.Errorf("attach image %d to plot %d: %w", imageID, plotID, err)
	}
	return true, nil
}

// Belongs reports whether the image is attached to the plot.
func (s *ImageService) Belongs(plotID, imageID uint) (bool, error) {
	var count int64
	err := s.DB.Table("plot_images").
		Where("plot_id = ? AND image_id = ?", plotID, imageID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check plot membership: %w", err)
	}
	return count > 0, nil
}

// SetMain makes imageID the single main image of the plot. The image must
// already be attached to the plot, otherwise ErrValidation. Idempotent.
func (s *ImageService) SetMain(plotID, imageID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table("plot_images").
			Where("plot_id = ? AND image_id = ?", plotID, imageID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check plot membership: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: image %d does not belong to plot %d", ErrValidation, imageID, plotID)
		}

		// Clear then set. A concurrent reader outside this transaction
		// never observes the zero-main intermediate state.
		if err := tx.Model(&models.Image{}).
			Where("id IN (?) AND is_main = ?", s.plotImageIDs(tx, plotID), true).
			Update("is_main", false).Error; err != nil {
			return fmt.Errorf("clear main flags: %w", err)
		}
		if err := tx.Model(&models.Image{}).
			Where("id = ?", imageID).
			Update("is_main", true).Error; err != nil {
			return fmt.Errorf("set main flag: %w", err)
		}
		return nil
	})
}

// Reorder applies new positions to the plot's images and re-elects the
// main image in one transaction. Exactly zero or one entry may carry
// is_main; when none does, the first entry of the payload is promoted so
// the plot never ends up without a main image. An empty payload is a
// no-op and leaves the current main flag alone.
func (s *ImageService) Reorder(plotID uint, items []ImageOrder) error {
	if len(items) == 0 {
		return nil
	}

	mains := 0
	for _, item := range items {
		if item.IsMain {
			mains++
		}
	}
	if mains > 1 {
		return fmt.Errorf("%w: only one image can be main", ErrValidation)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var plot models.LandPlot
		if err := tx.First(&plot, plotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: plot %d not found", ErrValidation, plotID)
			}
			return fmt.Errorf("lookup plot: %w", err)
		}

		var attachedIDs []uint
		if err := tx.Table("plot_images").Where("plot_id = ?", plotID).
			Pluck("image_id", &attachedIDs).Error; err != nil {
			return fmt.Errorf("list plot images: %w", err)
		}
		attached := make(map[uint]bool, len(attachedIDs))
		for _, id := range attachedIDs {
			attached[id] = true
		}
		for _, item := range items {
			if !attached[item.ID] {
				return fmt.Errorf("%w: image %d does not belong to plot %d", ErrValidation, item.ID, plotID)
			}
		}

		if err := tx.Model(&models.Image{}).
			Where("id IN (?) AND is_main = ?", s.plotImageIDs(tx, plotID), true).
			Update("is_main", false).Error; err != nil {
			return fmt.Errorf("clear main flags: %w", err)
		}

		mainID := items[0].ID // promoted when no entry is flagged
		for _, item := range items {
			if err := tx.Model(&models.Image{}).
				Where("id = ?", item.ID).
				Update("sort_order", item.Order).Error; err != nil {
				return fmt.Errorf("update order of image %d: %w", item.ID, err)
			}
			if item.IsMain {
				mainID = item.ID
			}
		}

		if err := tx.Model(&models.Image{}).
			Where("id = ?", mainID).
			Update("is_main", true).Error; err != nil {
			return fmt.Errorf("set main flag: %w", err)
		}
		return nil
	})
}

// DetachAndDelete removes the image's file, association rows and the row
// itself. File removal is best effort: an orphaned file is preferable to
// an orphaned database row. Returns false when the image does not exist.
//
// If the deleted image was a plot's main image no replacement is elected;
// the plot keeps zero main images until the next Reorder or SetMain call.
func (s *ImageService) DetachAndDelete(imageID uint) (bool, error) {
	var image models.Image
	if err := s.DB.First(&image, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("lookup image: %w", err)
	}

	RemoveImageFile(image.Filename)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM plot_images WHERE image_id = ?", imageID).Error; err != nil {
			return fmt.Errorf("delete associations: %w", err)
		}
		if err := tx.Delete(&models.Image{}, imageID).Error; err != nil {
			return fmt.Errorf("delete image row: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListForPlot returns the plot's images main-first, then by position,
// with ids as a stable tie breaker.
func (s *ImageService) ListForPlot(plotID uint) ([]models.Image, error) {
	var images []models.Image
	err := s.DB.Model(&models.Image{}).
		Where("id IN (?)", s.plotImageIDs(s.DB, plotID)).
		Order("is_main DESC, sort_order ASC, id ASC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("list plot images: %w", err)
	}
	return images, nil
}

// RemoveImageFile deletes a stored upload, logging failures instead of
// returning them.
func RemoveImageFile(filename string) {
	if filename == "" {
		return
	}
	path := imageDiskPath(filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  failed to remove image file %s: %v", path, err)
	}
}
