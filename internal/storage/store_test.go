package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

type ledger interface {
	domain.RunStore
	Get(ctx context.Context, id string) (*domain.RunRecord, error)
}

func stores(t *testing.T) map[string]ledger {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)

	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "runs", "brewrush.db"), log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]ledger{
		"memory": NewMemoryStore(log),
		"sqlite": sqlite,
	}
}

var base = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

func sampleRuns() []domain.RunRecord {
	return []domain.RunRecord{
		{ID: "a", StartedAt: base, Played: 10 * time.Minute, Revenue: 120, Fulfilled: 8, Expired: 2, Reason: domain.ReasonTime},
		{ID: "b", StartedAt: base.Add(time.Hour), Played: 3 * time.Minute, Revenue: 40, Fulfilled: 2, Reason: domain.ReasonQuit},
		{ID: "c", StartedAt: base.Add(2*time.Hour + 500*time.Millisecond), Played: 10 * time.Minute, Revenue: 120, Fulfilled: 9, Expired: 1, Reason: domain.ReasonTime},
		{ID: "d", StartedAt: base.Add(2 * time.Hour), Played: 10 * time.Minute, Revenue: 75, Fulfilled: 5, Expired: 4, Reason: domain.ReasonTime},
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			run := sampleRuns()[0]
			if err := store.Save(ctx, &run); err != nil {
				t.Fatalf("save: %v", err)
			}

			got, err := store.Get(ctx, "a")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if !got.StartedAt.Equal(run.StartedAt) || got.Played != run.Played || got.Revenue != run.Revenue ||
				got.Fulfilled != run.Fulfilled || got.Expired != run.Expired || got.Reason != run.Reason {
				t.Fatalf("round trip:\nwant %+v\ngot  %+v", run, *got)
			}

			if err := store.Save(ctx, &run); !errors.Is(err, domain.ErrAlreadyExists) {
				t.Fatalf("expected ErrAlreadyExists, got %v", err)
			}
			if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStoreOrdering(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, run := range sampleRuns() {
				run := run
				if err := store.Save(ctx, &run); err != nil {
					t.Fatalf("save %s: %v", run.ID, err)
				}
			}

			top, err := store.Top(ctx, 3)
			if err != nil {
				t.Fatalf("top: %v", err)
			}
			assertIDs(t, "top", top, "c", "a", "d")

			recent, err := store.Recent(ctx, 0)
			if err != nil {
				t.Fatalf("recent: %v", err)
			}
			assertIDs(t, "recent", recent, "c", "d", "b", "a")
		})
	}
}

func TestStoreEmpty(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			top, err := store.Top(ctx, 5)
			if err != nil {
				t.Fatalf("top: %v", err)
			}
			if len(top) != 0 {
				t.Fatalf("expected no runs, got %d", len(top))
			}
		})
	}
}

func assertIDs(t *testing.T, what string, runs []domain.RunRecord, want ...string) {
	t.Helper()
	if len(runs) != len(want) {
		t.Fatalf("%s: expected %d runs, got %d", what, len(want), len(runs))
	}
	for i, id := range want {
		if runs[i].ID != id {
			t.Fatalf("%s[%d]: expected %s, got %s", what, i, id, runs[i].ID)
		}
	}
}
