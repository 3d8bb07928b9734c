package utils

import (
	"errors"
	"strings"
)

// ErrUnuploadedLocalReference marks an attempt to persist a device-local
// image URI. The client must upload the image and store the returned server
// path instead.
var ErrUnuploadedLocalReference = errors.New("local file paths cannot be saved directly, upload the image first")

// The two canonical server-relative forms an image reference may take:
// /uploads/{key} for disk-backed files and /api/uploads/{id} for images
// stored as documents.
const (
	DiskUploadPrefix = "/uploads/"
	DocUploadPrefix  = "/api/uploads/"
)

// IsLocalRef reports whether raw is a device-local URI (pre-upload preview).
func IsLocalRef(raw string) bool {
	return strings.HasPrefix(raw, "file://") || strings.HasPrefix(raw, "content://")
}

// IsServerPath reports whether raw is already one of the canonical
// server-relative upload paths.
func IsServerPath(raw string) bool {
	return strings.HasPrefix(raw, DiskUploadPrefix) || strings.HasPrefix(raw, DocUploadPrefix)
}

// ResolveForStorage normalizes an image reference into the form persisted on
// a report. An empty reference is allowed ("no image"). Device-local URIs are
// rejected: they mean the caller skipped the upload step. Absolute URLs that
// point at our upload paths are truncated to the server-relative form; other
// absolute URLs pass through as external references.
//
// Any other non-empty string also passes through unchanged. Callers should
// log such values; see ResolveForStorage's second return.
func ResolveForStorage(raw string) (path string, known bool, err error) {
	if raw == "" {
		return "", true, nil
	}

	if IsLocalRef(raw) {
		return "", false, ErrUnuploadedLocalReference
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if i := strings.Index(raw, DocUploadPrefix); i >= 0 {
			return raw[i:], true, nil
		}
		if i := strings.Index(raw, DiskUploadPrefix); i >= 0 {
			return raw[i:], true, nil
		}
		// External URL, keep as-is.
		return raw, true, nil
	}

	if IsServerPath(raw) {
		return raw, true, nil
	}

	// Unknown format: accepted for compatibility, flagged for the caller.
	return raw, false, nil
}

// ResolveForDisplay maps a stored image reference to a fetchable URL.
// Server-relative paths are prefixed with the configured base URL; local URIs
// pass through for pre-upload preview; anything unrecognized yields "" and
// the caller substitutes a placeholder.
func ResolveForDisplay(raw, baseURL string) string {
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}

	if IsServerPath(raw) {
		return strings.TrimSuffix(baseURL, "/") + raw
	}

	if IsLocalRef(raw) {
		return raw
	}

	return ""
}
