package storage

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DiskStore writes images into an uploads directory served statically under
// /uploads. Storage keys are generated server-side; the client filename only
// contributes its extension.
type DiskStore struct {
	Dir string
}

// NewDiskStore ensures the uploads directory exists.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &DiskStore{Dir: dir}, nil
}

func (s *DiskStore) Save(ctx context.Context, data []byte, contentType, filename, uploaderID string) (string, error) {
	if err := ValidateUpload(contentType, filename, int64(len(data))); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("image-%d-%s%s", time.Now().UnixNano(), uuid.NewString(), ext)

	dst := filepath.Join(s.Dir, key)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", err
	}

	return "/uploads/" + key, nil
}

func (s *DiskStore) Get(ctx context.Context, ref string) ([]byte, string, error) {
	key := strings.TrimPrefix(ref, "/uploads/")
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "..") {
		return nil, "", ErrNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	contentType := http.DetectContentType(data)
	return data, contentType, nil
}
