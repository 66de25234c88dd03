package classifier

import (
	"context"

	"github.com/hotdog-classifier/backend/internal/models"
)

// StubClassifier never calls a real model. It is used in dev mode and when
// no API key is configured.
type StubClassifier struct{}

func NewStubClassifier() *StubClassifier { return &StubClassifier{} }

func (c *StubClassifier) Classify(_ context.Context, _ []byte, _ string) (*Result, error) {
	return &Result{
		Label:      models.LabelNotHotDog,
		ModelReply: "stub classifier: no model configured",
	}, nil
}
