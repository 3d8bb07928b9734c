package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// MaxUploadBytes caps accepted image payloads at 10 MiB.
const MaxUploadBytes = 10 << 20

var (
	ErrUnsupportedMediaType = errors.New("only image files are allowed")
	ErrPayloadTooLarge      = errors.New("image exceeds the maximum upload size")
	ErrNotFound             = errors.New("image not found")
)

// ImageStore persists uploaded image binaries and hands back the canonical
// server-relative path that reports reference. Stores are append-only:
// nothing ever overwrites or deletes an ingested image.
type ImageStore interface {
	// Save persists the payload and returns its canonical path. It returns
	// only after the backend confirmed the write.
	Save(ctx context.Context, data []byte, contentType, filename, uploaderID string) (string, error)

	// Get returns the binary and content type for a previously saved image.
	Get(ctx context.Context, ref string) ([]byte, string, error)
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateUpload enforces the shared ingestion rules: image content type,
// allow-listed extension when a filename is present, and the size cap.
func ValidateUpload(contentType, filename string, size int64) error {
	if size > MaxUploadBytes {
		return ErrPayloadTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrUnsupportedMediaType
	}
	if filename != "" {
		ext := strings.ToLower(filepath.Ext(filename))
		if !allowedExtensions[ext] {
			return ErrUnsupportedMediaType
		}
	}
	return nil
}
