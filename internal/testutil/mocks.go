// mocks.go - Mock implementations for handler tests
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/hotdog-classifier/backend/internal/blob"
	"github.com/hotdog-classifier/backend/internal/classifier"
	"github.com/hotdog-classifier/backend/internal/models"
	"github.com/hotdog-classifier/backend/internal/store"
)

// MockClassifier implements classifier.Classifier with a fixed outcome
type MockClassifier struct {
	Label      models.Label
	ModelReply string
	Err        error

	mu    sync.Mutex
	calls int
}

// NewMockClassifier creates a classifier always answering with the given label
func NewMockClassifier(label models.Label, reply string) *MockClassifier {
	return &MockClassifier{Label: label, ModelReply: reply}
}

func (m *MockClassifier) Classify(_ context.Context, _ []byte, _ string) (*classifier.Result, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return &classifier.Result{Label: m.Label, ModelReply: m.ModelReply}, nil
}

// Calls returns how often Classify was invoked
func (m *MockClassifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Ensure MockClassifier implements classifier.Classifier
var _ classifier.Classifier = (*MockClassifier)(nil)

// MockBlobStore implements blob.Store in memory
type MockBlobStore struct {
	mu      sync.RWMutex
	objects map[string]blob.Object

	// PutErr / DeleteErr force the corresponding operation to fail
	PutErr    error
	DeleteErr error
}

// NewMockBlobStore creates an empty in-memory blob store
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{objects: make(map[string]blob.Object)}
}

func (m *MockBlobStore) Put(_ context.Context, key, contentType string, data []byte) error {
	if m.PutErr != nil {
		return m.PutErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = blob.Object{ContentType: contentType, Data: data}
	return nil
}

func (m *MockBlobStore) Get(_ context.Context, key string) (*blob.Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return &obj, nil
}

func (m *MockBlobStore) Delete(_ context.Context, key string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; !ok {
		return blob.ErrNotFound
	}
	delete(m.objects, key)
	return nil
}

// ObjectCount returns the number of stored objects
func (m *MockBlobStore) ObjectCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// Ensure MockBlobStore implements blob.Store
var _ blob.Store = (*MockBlobStore)(nil)

// FailingRecordStore wraps a RecordStore and fails every Insert.
// It simulates a broken database for best-effort persistence tests.
type FailingRecordStore struct {
	store.RecordStore
}

// NewFailingRecordStore creates a record store whose inserts always fail
func NewFailingRecordStore() *FailingRecordStore {
	return &FailingRecordStore{RecordStore: store.NewMemoryStore()}
}

func (s *FailingRecordStore) Insert(_ context.Context, _ *models.ClassificationRecord) error {
	return errors.New("database unavailable")
}
