// Package blob stores original uploaded image bytes.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no object exists for the given key.
var ErrNotFound = errors.New("object not found")

// Object is a stored blob together with its content type.
type Object struct {
	ContentType string
	Data        []byte
}

// Store is the interface for object storage backends.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// Key builds the storage key for a classification record ID.
func Key(id, contentType string) string {
	return "uploads/" + id + extensionFor(contentType)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
