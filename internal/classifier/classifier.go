// Package classifier decides whether an image contains a hot dog.
package classifier

import (
	"context"

	"github.com/hotdog-classifier/backend/internal/models"
)

// Result holds the normalized label together with the raw model reply.
type Result struct {
	Label      models.Label
	ModelReply string
}

// Classifier classifies an image into one of the two labels.
// Implementations must be interchangeable.
type Classifier interface {
	Classify(ctx context.Context, image []byte, contentType string) (*Result, error)
}
