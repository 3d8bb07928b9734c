package storage

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidateUpload(t *testing.T) {
	if err := ValidateUpload("image/jpeg", "photo.jpg", 2<<20); err != nil {
		t.Fatalf("expected valid upload, got %v", err)
	}
	if err := ValidateUpload("image/png", "", 1024); err != nil {
		t.Fatalf("missing filename must be allowed, got %v", err)
	}

	if err := ValidateUpload("image/jpeg", "big.jpg", 12<<20); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge for 12 MiB, got %v", err)
	}
	if err := ValidateUpload("application/octet-stream", "tool.jpg", 2<<20); !errors.Is(err, ErrUnsupportedMediaType) {
		t.Fatalf("expected ErrUnsupportedMediaType for octet-stream, got %v", err)
	}
	if err := ValidateUpload("image/jpeg", "script.exe", 1024); !errors.Is(err, ErrUnsupportedMediaType) {
		t.Fatalf("expected ErrUnsupportedMediaType for .exe, got %v", err)
	}
}

func TestDiskStoreRoundtrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	// Minimal PNG header so content detection has something to chew on.
	payload := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

	path, err := store.Save(context.Background(), payload, "image/png", "shot.png", "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/") {
		t.Fatalf("expected canonical /uploads/ path, got %q", path)
	}

	data, contentType, err := store.Get(context.Background(), path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatal("stored payload does not match")
	}
	if contentType != "image/png" {
		t.Fatalf("expected image/png, got %q", contentType)
	}
}

func TestDiskStoreGetMissing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	if _, _, err := store.Get(context.Background(), "/uploads/nope.jpg"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := store.Get(context.Background(), "/uploads/../secrets"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected traversal to be rejected, got %v", err)
	}
}

func TestDiskStoreRejectsInvalidUpload(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	_, err = store.Save(context.Background(), make([]byte, 128), "text/plain", "notes.txt", "")
	if !errors.Is(err, ErrUnsupportedMediaType) {
		t.Fatalf("expected ErrUnsupportedMediaType, got %v", err)
	}
}
