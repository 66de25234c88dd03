package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hotdog-classifier/backend/internal/models"
)

func TestMemoryStore_InsertAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := &models.ClassificationRecord{
		ID:        "rec-1",
		Label:     models.LabelHotDog,
		FileName:  "lunch.jpg",
		CreatedAt: time.Now(),
	}

	if err := s.Insert(ctx, rec); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	got, err := s.Get(ctx, "rec-1")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if got.Label != models.LabelHotDog {
		t.Errorf("expected label %q, got %q", models.LabelHotDog, got.Label)
	}
	if got.FileName != "lunch.jpg" {
		t.Errorf("expected file name lunch.jpg, got %q", got.FileName)
	}

	if err := s.Insert(ctx, rec); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	if _, err := s.Get(ctx, "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ListOrderAndPaging(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := &models.ClassificationRecord{
			ID:        fmt.Sprintf("rec-%d", i),
			Label:     models.LabelNotHotDog,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.Insert(ctx, rec); err != nil {
			t.Fatalf("unexpected insert error: %v", err)
		}
	}

	tests := []struct {
		name    string
		limit   int
		offset  int
		wantIDs []string
	}{
		{
			name:    "first page newest first",
			limit:   2,
			offset:  0,
			wantIDs: []string{"rec-4", "rec-3"},
		},
		{
			name:    "second page",
			limit:   2,
			offset:  2,
			wantIDs: []string{"rec-2", "rec-1"},
		},
		{
			name:    "last partial page",
			limit:   2,
			offset:  4,
			wantIDs: []string{"rec-0"},
		},
		{
			name:    "offset beyond end",
			limit:   2,
			offset:  10,
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.limit, tt.offset)
			if err != nil {
				t.Fatalf("unexpected list error: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d records, got %d", len(tt.wantIDs), len(got))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("record %d: expected ID %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("unexpected count error: %v", err)
	}
	if count != 5 {
		t.Errorf("expected count 5, got %d", count)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := &models.ClassificationRecord{ID: "rec-1", CreatedAt: time.Now()}
	if err := s.Insert(ctx, rec); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	if err := s.Delete(ctx, "rec-1"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if _, err := s.Get(ctx, "rec-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "rec-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for second delete, got %v", err)
	}
}
