package store

import (
	"context"
	"sort"
	"sync"

	"github.com/hotdog-classifier/backend/internal/models"
)

// MemoryStore implements RecordStore in process memory. It backs the
// history list when no database is configured, and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.ClassificationRecord
}

// NewMemoryStore creates an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]models.ClassificationRecord),
	}
}

func (s *MemoryStore) Insert(_ context.Context, rec *models.ClassificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; exists {
		return ErrDuplicate
	}
	s.records[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.ClassificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) List(_ context.Context, limit, offset int) ([]models.ClassificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.ClassificationRecord, 0, len(s.records))
	for _, rec := range s.records {
		all = append(all, rec)
	}

	// Newest first; break ties on ID for a stable order.
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	return all, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// Ensure MemoryStore implements RecordStore.
var _ RecordStore = (*MemoryStore)(nil)
