package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Extensions accepted for property resources (legal documents + imagery).
var allowedUploadExt = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// AllowedUploadExt returns the mime type for ext (with leading dot) and
// whether the extension is accepted.
func AllowedUploadExt(ext string) (string, bool) {
	mime, ok := allowedUploadExt[strings.ToLower(ext)]
	return mime, ok
}

// RandomFileName builds "<prefix>_<unixnano>_<hex>.<ext>" to avoid
// collisions and path tricks in user-supplied names.
func RandomFileName(prefix, ext string) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s_%d%s", prefix, time.Now().UnixNano(), ext)
	}
	return fmt.Sprintf("%s_%d_%x%s", prefix, time.Now().UnixNano(), b, ext)
}

// SaveBase64Image decodes a base64 image (raw payload or data URI like
// "data:image/png;base64,....") and writes it under destDir. Returns the
// saved path.
func SaveBase64Image(base64Str, destDir string) (string, error) {
	base64Str = strings.TrimSpace(base64Str)
	if base64Str == "" {
		return "", fmt.Errorf("empty base64 string")
	}

	ext := ""
	if strings.HasPrefix(base64Str, "data:") {
		parts := strings.SplitN(base64Str, ";base64,", 2)
		if len(parts) == 2 {
			switch strings.TrimPrefix(parts[0], "data:") {
			case "image/png":
				ext = ".png"
			case "image/jpeg", "image/jpg":
				ext = ".jpg"
			case "image/webp":
				ext = ".webp"
			}
			base64Str = parts[1]
		} else if idx := strings.Index(base64Str, ","); idx != -1 {
			base64Str = base64Str[idx+1:]
		}
	}
	if ext == "" {
		ext = ".png"
	}

	data, err := base64.StdEncoding.DecodeString(base64Str)
	if err != nil {
		data, err = base64.URLEncoding.DecodeString(base64Str)
		if err != nil {
			return "", fmt.Errorf("base64 decode failed: %w", err)
		}
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir failed: %w", err)
	}

	fullpath := filepath.Join(destDir, RandomFileName("img", ext))
	if err := os.WriteFile(fullpath, data, 0o644); err != nil {
		return "", fmt.Errorf("write file failed: %w", err)
	}
	return fullpath, nil
}
