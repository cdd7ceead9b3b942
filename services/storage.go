package services

import (
	"os"
	"path/filepath"
	"strings"
)

// UploadFolder is where plot images land on disk. Served under /images.
func UploadFolder() string {
	folder := strings.TrimSpace(os.Getenv("UPLOAD_FOLDER"))
	if folder == "" {
		folder = filepath.Join("static", "images")
	}
	return folder
}

// DocumentFolder is where attached documents land on disk. Served under
// /uploads.
func DocumentFolder() string {
	folder := strings.TrimSpace(os.Getenv("DOCUMENT_FOLDER"))
	if folder == "" {
		folder = filepath.Join("static", "uploads")
	}
	return folder
}

func imageDiskPath(filename string) string {
	return filepath.Join(UploadFolder(), filename)
}
