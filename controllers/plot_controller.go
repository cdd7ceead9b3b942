package controllers

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"altailand-backend/models"
	"altailand-backend/services"
	"altailand-backend/utils"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 * 1024 * 1024

type PlotController struct {
	Plots  *services.PlotService
	Images *services.ImageService
}

func NewPlotController(plots *services.PlotService, images *services.ImageService) *PlotController {
	return &PlotController{Plots: plots, Images: images}
}

func plotFilterFromQuery(c *gin.Context, showHidden bool) services.PlotFilter {
	return services.PlotFilter{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Category:   c.Query("category"),
		Region:     c.Query("region"),
		Location:   c.Query("location"),
		PriceMin:   queryFloat(c, "price_min"),
		PriceMax:   queryFloat(c, "price_max"),
		AreaMin:    queryFloat(c, "area_min"),
		AreaMax:    queryFloat(c, "area_max"),
		ShowHidden: showHidden,
		Skip:       queryInt(c, "skip", 0),
		Limit:      queryInt(c, "limit", 9),
	}
}

func (ctrl *PlotController) listPlots(c *gin.Context, showHidden bool) {
	plots, err := ctrl.Plots.List(plotFilterFromQuery(c, showHidden))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plots)
}

func (ctrl *PlotController) countPlots(c *gin.Context, showHidden bool) {
	total, err := ctrl.Plots.Count(plotFilterFromQuery(c, showHidden))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// GetPlots is the public catalog: hidden plots never appear.
func (ctrl *PlotController) GetPlots(c *gin.Context) { ctrl.listPlots(c, false) }

func (ctrl *PlotController) CountPlots(c *gin.Context) { ctrl.countPlots(c, false) }

// AdminGetPlots lists everything including hidden plots.
func (ctrl *PlotController) AdminGetPlots(c *gin.Context) { ctrl.listPlots(c, true) }

func (ctrl *PlotController) AdminCountPlots(c *gin.Context) { ctrl.countPlots(c, true) }

func (ctrl *PlotController) GetPlot(c *gin.Context) {
	plotID, ok := idParam(c, "id")
	if !ok {
		return
	}
	plot, err := ctrl.Plots.Get(plotID, false)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plot)
}

func (ctrl *PlotController) AdminGetPlot(c *gin.Context) {
	plotID, ok := idParam(c, "id")
	if !ok {
		return
	}
	plot, err := ctrl.Plots.Get(plotID, true)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plot)
}

func (ctrl *PlotController) GetRegions(c *gin.Context) {
	values, err := ctrl.Plots.Regions()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

func (ctrl *PlotController) GetLocations(c *gin.Context) {
	values, err := ctrl.Plots.Locations()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

func (ctrl *PlotController) GetCategories(c *gin.Context) {
	values, err := ctrl.Plots.Categories()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

func (ctrl *PlotController) CreatePlot(c *gin.Context) {
	var plot models.LandPlot
	if err := c.ShouldBindJSON(&plot); err != nil {
		log.Printf("❌ plot payload binding error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}
	plot.ID = 0
	plot.Images = nil

	if err := ctrl.Plots.Create(&plot); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plot)
}

func (ctrl *PlotController) UpdatePlot(c *gin.Context) {
	plotID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var upd services.PlotUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	plot, err := ctrl.Plots.Update(plotID, upd)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plot)
}

type visibilityPayload struct {
	IsVisible *bool `json:"is_visible" binding:"required"`
}

func (ctrl *PlotController) ToggleVisibility(c *gin.Context) {
	plotID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var payload visibilityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_visible is required"})
		return
	}

	plot, err := ctrl.Plots.SetVisibility(plotID, *payload.IsVisible)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plot)
}

func (ctrl *PlotController) DeletePlot(c *gin.Context) {
	plotID, ok := idParam(c, "id")
	if !ok {
		return
	}

	deleted, err := ctrl.Plots.Delete(plotID)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "plot not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plot deleted successfully"})
}

// UploadImage stores the file, creates the image row and attaches it to
// the plot. The first image of a plot (or an explicit is_main=true form
// field) is promoted to main right away.
func (ctrl *PlotController) UploadImage(c *gin.Context) {
	plotID, ok := idParam(c, "id")
	if !ok {
		return
	}

	plot, err := ctrl.Plots.Get(plotID, true)
	if err != nil {
		serviceError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !utils.IsAllowedFileType(file.Filename, "image") {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "only image files are allowed"})
		return
	}
	if file.Size > maxImageSize {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "file exceeds the 10MB limit"})
		return
	}

	order := -1
	if raw := c.PostForm("order"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			order = v
		}
	}
	isMain := c.PostForm("is_main") == "true"

	folder := services.UploadFolder()
	if err := os.MkdirAll(folder, 0755); err != nil {
		log.Printf("❌ failed to create upload folder %s: %v", folder, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	filename := utils.SafeFilename(file.Filename, contentType)
	diskPath, urlPath := utils.UploadPath(folder, filename)
	if err := c.SaveUploadedFile(file, diskPath); err != nil {
		log.Printf("❌ failed to save upload %s: %v", diskPath, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	image, err := ctrl.Images.Create(filename, urlPath, order)
	if err != nil {
		_ = os.Remove(diskPath)
		serviceError(c, err)
		return
	}

	attached, err := ctrl.Images.Attach(plotID, image.ID)
	if err != nil || !attached {
		_ = os.Remove(diskPath)
		if _, delErr := ctrl.Images.DetachAndDelete(image.ID); delErr != nil {
			log.Printf("⚠️  failed to roll back image %d: %v", image.ID, delErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach image to plot"})
		return
	}

	if isMain || len(plot.Images) == 0 {
		if err := ctrl.Images.SetMain(plotID, image.ID); err != nil {
			// Non-fatal: the upload succeeded, only the promotion failed.
			log.Printf("⚠️  failed to set image %d as main for plot %d: %v", image.ID, plotID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"id": image.ID, "filename": filename, "path": urlPath})
}

type reorderPayload struct {
	Images []services.ImageOrder `json:"images"`
}

func (ctrl *PlotController) ReorderImages(c *gin.Context) {
	plotID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var payload reorderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	if err := ctrl.Images.Reorder(plotID, payload.Images); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (ctrl *PlotController) SetMainImage(c *gin.Context) {
	plotID, ok := idParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := idParam(c, "imageId")
	if !ok {
		return
	}

	if err := ctrl.Images.SetMain(plotID, imageID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "main image updated"})
}

func (ctrl *PlotController) DeleteImage(c *gin.Context) {
	plotID, ok := idParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := idParam(c, "imageId")
	if !ok {
		return
	}

	belongs, err := ctrl.Images.Belongs(plotID, imageID)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !belongs {
		c.JSON(http.StatusForbidden, gin.H{"error": "image does not belong to this plot"})
		return
	}

	deleted, err := ctrl.Images.DetachAndDelete(imageID)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "image deleted successfully"})
}
