// Package store persists classification records.
package store

import (
	"context"
	"errors"

	"github.com/hotdog-classifier/backend/internal/models"
)

var (
	// ErrNotFound is returned when no record exists for the given ID.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a record with the same ID already exists.
	ErrDuplicate = errors.New("record already exists")
)

// RecordStore is the interface for classification record persistence.
type RecordStore interface {
	Insert(ctx context.Context, rec *models.ClassificationRecord) error
	Get(ctx context.Context, id string) (*models.ClassificationRecord, error)
	// List returns records newest first.
	List(ctx context.Context, limit, offset int) ([]models.ClassificationRecord, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
