package utils

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

var allowedExtensions = map[string][]string{
	"document": {".pdf", ".doc", ".docx", ".txt", ".rtf", ".xls", ".xlsx"},
	"image":    {".jpg", ".jpeg", ".png", ".gif", ".webp"},
	"archive":  {".zip", ".rar", ".7z"},
}

var fileSizeLimits = map[string]int64{
	"document": 10 * 1024 * 1024,
	"image":    5 * 1024 * 1024,
	"archive":  50 * 1024 * 1024,
}

func IsAllowedFileType(filename, kind string) bool {
	exts, ok := allowedExtensions[kind]
	if !ok {
		return false
	}
	lower := strings.ToLower(filename)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func FileSizeLimit(kind string) int64 {
	if limit, ok := fileSizeLimits[kind]; ok {
		return limit
	}
	return 5 * 1024 * 1024
}

// SafeFilename strips everything but alphanumerics, dash, underscore and
// dot from an uploaded filename, then prefixes a timestamp so repeated
// uploads of the same file never collide.
func SafeFilename(original, contentType string) string {
	if original == "" {
		original = "unnamed_file"
	}
	var b strings.Builder
	for _, r := range original {
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		}
	}
	safe := b.String()
	if safe == "" || safe == "." {
		safe = "unnamed_file"
	}

	if !strings.Contains(safe, ".") && strings.HasPrefix(contentType, "image/") {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext := exts[0]
			if ext == ".jpe" || ext == ".jpeg" {
				ext = ".jpg"
			}
			safe += ext
		}
	}

	return fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), safe)
}

// UploadPath joins the upload folder with a generated filename and returns
// both the on-disk path and the public URL path.
func UploadPath(folder, filename string) (diskPath, urlPath string) {
	return filepath.Join(folder, filename), "/images/" + filename
}
