package services

import (
	"errors"
	"fmt"
	"strings"

	"altailand-backend/models"

	"gorm.io/gorm"
)

// PlotFilter is the shared filter set of the public catalog and the admin
// list. ShowHidden is only ever true for admin calls.
type PlotFilter struct {
	Search     string
	Status     string
	Category   string
	Region     string
	Location   string
	PriceMin   *float64
	PriceMax   *float64
	AreaMin    *float64
	AreaMax    *float64
	ShowHidden bool
	Skip       int
	Limit      int
}

// PlotUpdate carries a partial update; nil fields are left untouched.
type PlotUpdate struct {
	Title            *string             `json:"title"`
	Description      *models.Description `json:"description"`
	CadastralNumbers *models.StringList  `json:"cadastral_numbers"`
	Area             *float64            `json:"area"`
	SpecifiedArea    *float64            `json:"specified_area"`
	Price            *int64              `json:"price"`
	PricePerSotka    *int64              `json:"price_per_sotka"`
	Location         *string             `json:"location"`
	Region           *string             `json:"region"`
	LandCategory     *string             `json:"land_category"`
	PermittedUse     *string             `json:"permitted_use"`
	Features         *models.StringList  `json:"features"`
	Communications   *models.StringList  `json:"communications"`
	Status           *models.PlotStatus  `json:"status"`
	IsVisible        *bool               `json:"is_visible"`
}

type PlotService struct {
	DB *gorm.DB
}

func NewPlotService(db *gorm.DB) *PlotService {
	return &PlotService{DB: db}
}

// orderedImages preloads the image collection main-first.
func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("is_main DESC, sort_order ASC, id ASC")
}

func (s *PlotService) applyFilter(q *gorm.DB, f PlotFilter) *gorm.DB {
	if !f.ShowHidden {
		q = q.Where("is_visible = ?", true)
	}
	if f.Search != "" {
		like := "%" + strings.TrimSpace(f.Search) + "%"
		q = q.Where("title LIKE ? OR CAST(cadastral_numbers AS CHAR) LIKE ?", like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("land_category = ?", f.Category)
	}
	if f.Region != "" {
		q = q.Where("region = ?", f.Region)
	}
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}
	if f.AreaMin != nil {
		q = q.Where("area >= ?", *f.AreaMin)
	}
	if f.AreaMax != nil {
		q = q.Where("area <= ?", *f.AreaMax)
	}
	return q
}

func (s *PlotService) List(f PlotFilter) ([]models.LandPlot, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 9
	}

	var plots []models.LandPlot
	err := s.applyFilter(s.DB.Model(&models.LandPlot{}), f).
		Preload("Images", orderedImages).
		Offset(f.Skip).
		Limit(limit).
		Find(&plots).Error
	if err != nil {
		return nil, fmt.Errorf("list plots: %w", err)
	}
	return plots, nil
}

func (s *PlotService) Count(f PlotFilter) (int64, error) {
	var total int64
	err := s.applyFilter(s.DB.Model(&models.LandPlot{}), f).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("count plots: %w", err)
	}
	return total, nil
}

func (s *PlotService) Get(plotID uint, showHidden bool) (*models.LandPlot, error) {
	q := s.DB.Preload("Images", orderedImages)
	if !showHidden {
		q = q.Where("is_visible = ?", true)
	}

	var plot models.LandPlot
	if err := q.First(&plot, plotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get plot: %w", err)
	}
	return &plot, nil
}

func (s *PlotService) Create(plot *models.LandPlot) error {
	switch {
	case strings.TrimSpace(plot.Title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case strings.TrimSpace(plot.Description.Text) == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	case len(plot.CadastralNumbers) == 0:
		return fmt.Errorf("%w: at least one cadastral number is required", ErrValidation)
	case plot.Area <= 0:
		return fmt.Errorf("%w: area must be positive", ErrValidation)
	case plot.Price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	case plot.PricePerSotka <= 0:
		return fmt.Errorf("%w: price per sotka must be positive", ErrValidation)
	case strings.TrimSpace(plot.Location) == "":
		return fmt.Errorf("%w: location is required", ErrValidation)
	case strings.TrimSpace(plot.Region) == "":
		return fmt.Errorf("%w: region is required", ErrValidation)
	case strings.TrimSpace(plot.LandCategory) == "":
		return fmt.Errorf("%w: land category is required", ErrValidation)
	case strings.TrimSpace(plot.PermittedUse) == "":
		return fmt.Errorf("%w: permitted use is required", ErrValidation)
	}

	if plot.Status == "" {
		plot.Status = models.PlotStatusAvailable
	}
	if err := s.DB.Create(plot).Error; err != nil {
		return fmt.Errorf("create plot: %w", err)
	}
	return nil
}

func (s *PlotService) Update(plotID uint, upd PlotUpdate) (*models.LandPlot, error) {
	plot, err := s.Get(plotID, true)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if upd.Title != nil {
		changes["title"] = *upd.Title
	}
	if upd.Description != nil {
		changes["description"] = *upd.Description
	}
	if upd.CadastralNumbers != nil {
		changes["cadastral_numbers"] = *upd.CadastralNumbers
	}
	if upd.Area != nil {
		changes["area"] = *upd.Area
	}
	if upd.SpecifiedArea != nil {
		changes["specified_area"] = *upd.SpecifiedArea
	}
	if upd.Price != nil {
		changes["price"] = *upd.Price
	}
	if upd.PricePerSotka != nil {
		changes["price_per_sotka"] = *upd.PricePerSotka
	}
	if upd.Location != nil {
		changes["location"] = *upd.Location
	}
	if upd.Region != nil {
		changes["region"] = *upd.Region
	}
	if upd.LandCategory != nil {
		changes["land_category"] = *upd.LandCategory
	}
	if upd.PermittedUse != nil {
		changes["permitted_use"] = *upd.PermittedUse
	}
	if upd.Features != nil {
		changes["features"] = *upd.Features
	}
	if upd.Communications != nil {
		changes["communications"] = *upd.Communications
	}
	if upd.Status != nil {
		changes["status"] = *upd.Status
	}
	if upd.IsVisible != nil {
		changes["is_visible"] = *upd.IsVisible
	}

	if len(changes) > 0 {
		if err := s.DB.Model(plot).Updates(changes).Error; err != nil {
			return nil, fmt.Errorf("update plot: %w", err)
		}
	}
	return s.Get(plotID, true)
}

func (s *PlotService) SetVisibility(plotID uint, visible bool) (*models.LandPlot, error) {
	plot, err := s.Get(plotID, true)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(plot).Update("is_visible", visible).Error; err != nil {
		return nil, fmt.Errorf("update visibility: %w", err)
	}
	plot.IsVisible = visible
	return plot, nil
}

// Delete removes a plot together with its images. Files go first, best
// effort; the rows go afterwards in one transaction so a storage failure
// never leaves half a plot behind.
func (s *PlotService) Delete(plotID uint) (bool, error) {
	plot, err := s.Get(plotID, true)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	for _, image := range plot.Images {
		RemoveImageFile(image.Filename)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM plot_images WHERE plot_id = ?", plotID).Error; err != nil {
			return fmt.Errorf("delete associations: %w", err)
		}
		for _, image := range plot.Images {
			if err := tx.Delete(&models.Image{}, image.ID).Error; err != nil {
				return fmt.Errorf("delete image %d: %w", image.ID, err)
			}
		}
		if err := tx.Delete(&models.LandPlot{}, plotID).Error; err != nil {
			return fmt.Errorf("delete plot: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *PlotService) distinct(column string) ([]string, error) {
	var values []string
	err := s.DB.Model(&models.LandPlot{}).
		Where("is_visible = ?", true).
		Where(column+" <> ''").
		Distinct(column).
		Order(column + " ASC").
		Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	return values, nil
}

func (s *PlotService) Regions() ([]string, error)    { return s.distinct("region") }
func (s *PlotService) Locations() ([]string, error)  { return s.distinct("location") }
func (s *PlotService) Categories() ([]string, error) { return s.distinct("land_category") }
