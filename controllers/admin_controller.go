package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"altailand-backend/models"
	"altailand-backend/services"
	"altailand-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminController groups the dashboard, traffic tracking and document
// upload endpoints that have no entity of their own.
type AdminController struct {
	Stats *services.StatsService
}

func NewAdminController(stats *services.StatsService) *AdminController {
	return &AdminController{Stats: stats}
}

func (ctrl *AdminController) GetStats(c *gin.Context) {
	stats, err := ctrl.Stats.Dashboard()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ctrl *AdminController) GetVisitorStats(c *gin.Context) {
	stats, err := ctrl.Stats.Visitors()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type trackVisitPayload struct {
	SessionID string  `json:"session_id"`
	Path      string  `json:"path" binding:"required"`
	Referrer  *string `json:"referrer"`
}

// TrackVisit records a page view fired by the public frontend.
func (ctrl *AdminController) TrackVisit(c *gin.Context) {
	var payload trackVisitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	visit := models.Visitor{
		SessionID: payload.SessionID,
		Path:      payload.Path,
		Referrer:  payload.Referrer,
	}
	if ua := c.GetHeader("User-Agent"); ua != "" {
		visit.UserAgent = &ua
	}
	if ip := c.ClientIP(); ip != "" {
		visit.IPAddress = &ip
	}

	if err := ctrl.Stats.TrackVisit(&visit); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

const maxDocumentSize = 10 << 20

// saveDocument validates and stores one uploaded document, returning its
// public descriptor.
func saveDocument(c *gin.Context, file *multipart.FileHeader) (gin.H, error) {
	if !utils.IsAllowedFileType(file.Filename, "document") && !utils.IsAllowedFileType(file.Filename, "image") {
		return nil, fmt.Errorf("file type not allowed: %s", file.Filename)
	}
	if file.Size > maxDocumentSize {
		return nil, fmt.Errorf("file too large: %s", file.Filename)
	}

	folder := services.DocumentFolder()
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, fmt.Errorf("create upload folder: %w", err)
	}

	fileID := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	ext := strings.ToLower(filepath.Ext(file.Filename))
	stored := fmt.Sprintf("%s_%s%s", time.Now().Format("20060102_150405"), fileID, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(folder, stored)); err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}

	return gin.H{
		"id":   fileID,
		"name": file.Filename,
		"url":  "/uploads/" + stored,
		"type": ext,
	}, nil
}

func (ctrl *AdminController) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	info, err := saveDocument(c, file)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (ctrl *AdminController) UploadDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "files are required"})
		return
	}

	uploaded := make([]gin.H, 0, len(files))
	for _, file := range files {
		info, err := saveDocument(c, file)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		uploaded = append(uploaded, info)
	}
	c.JSON(http.StatusOK, gin.H{"files": uploaded})
}

// DownloadDocument serves a stored document as an attachment. The path is
// resolved against the document folder and must stay inside it.
func (ctrl *AdminController) DownloadDocument(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename is required"})
		return
	}

	folder := services.DocumentFolder()
	full := filepath.Join(folder, filepath.Clean("/"+name))
	if !strings.HasPrefix(full, filepath.Clean(folder)+string(os.PathSeparator)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid path"})
		return
	}
	if _, err := os.Stat(full); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.FileAttachment(full, filepath.Base(full))
}
