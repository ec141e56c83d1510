// Package uploader ships rendered print sheets to the print bureau's
// object storage.
package uploader

import (
	"context"
	"io"
	"path/filepath"
)

// Uploader is the interface for pushing rendered sheets to remote storage
type Uploader interface {
	// Upload uploads a file under the given key
	Upload(ctx context.Context, key string, content io.Reader, contentType string) error

	// Exists checks if a file exists at the given key
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for an uploaded file
	GetURL(key string) string
}

// DetectContentType maps a sheet filename to its MIME type
func DetectContentType(filename string) string {
	switch filepath.Ext(filename) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
