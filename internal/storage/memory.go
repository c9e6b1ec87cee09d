// Package storage keeps the ledger of finished runs.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

// Compile-time interface check.
var _ domain.RunStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory run ledger. Safe for concurrent access.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]domain.RunRecord
	log  *logger.Logger
}

// NewMemoryStore creates an empty in-memory ledger.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]domain.RunRecord),
		log:  log,
	}
}

// Save records a finished run. Each id can be saved once.
func (s *MemoryStore) Save(ctx context.Context, run *domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[run.ID]; ok {
		return fmt.Errorf("run %s: %w", run.ID, domain.ErrAlreadyExists)
	}
	s.log.Debug("saving run %s (revenue=%d, reason=%s)", run.ID, run.Revenue, run.Reason)
	s.runs[run.ID] = *run
	return nil
}

// Get retrieves a run by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		s.log.Debug("run not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// Recent returns up to limit runs, newest first.
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	out := s.all()
	sort.Slice(out, func(i, j int) bool { return newer(out[i], out[j]) })
	return head(out, limit), nil
}

// Top returns up to limit runs, highest revenue first.
func (s *MemoryStore) Top(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	out := s.all()
	sort.Slice(out, func(i, j int) bool { return better(out[i], out[j]) })
	return head(out, limit), nil
}

func (s *MemoryStore) all() []domain.RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, run)
	}
	return out
}

// better ranks by revenue, then orders served, then the earlier run.
func better(a, b domain.RunRecord) bool {
	if a.Revenue != b.Revenue {
		return a.Revenue > b.Revenue
	}
	if a.Fulfilled != b.Fulfilled {
		return a.Fulfilled > b.Fulfilled
	}
	return a.StartedAt.Before(b.StartedAt)
}

func newer(a, b domain.RunRecord) bool {
	if !a.StartedAt.Equal(b.StartedAt) {
		return a.StartedAt.After(b.StartedAt)
	}
	return a.ID < b.ID
}

func head(runs []domain.RunRecord, limit int) []domain.RunRecord {
	if limit > 0 && len(runs) > limit {
		return runs[:limit]
	}
	return runs
}
