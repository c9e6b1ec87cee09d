package fulfill

import (
	"errors"
	"testing"
	"time"

	"github.com/hammamikhairi/brewrush/internal/customer"
	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/inventory"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

var amulet = &domain.Recipe{
	ID:   "amulet",
	Name: "Amulet",
	Ingredients: []domain.Ingredient{
		{Item: "skull", Quantity: 1},
		{Item: "firefly", Quantity: 2},
	},
	Payout:  24,
	MinWait: time.Minute,
	MaxWait: 2 * time.Minute,
}

func setup(t *testing.T, items ...domain.ItemID) (*Resolver, *customer.Queue, *inventory.Store) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	q := customer.NewQueue(log, 4)
	if _, err := q.Spawn(amulet, time.Minute); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	inv := inventory.New(9)
	for _, item := range items {
		if err := inv.Add(item); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	return NewResolver(q, log), q, inv
}

func TestTryFulfillSuccess(t *testing.T) {
	r, q, inv := setup(t, "skull", "firefly", "firefly", "glow-worm")

	payout, err := r.TryFulfill(1, inv)
	if err != nil {
		t.Fatalf("fulfill: %v", err)
	}
	if payout != 24 {
		t.Fatalf("expected payout 24, got %d", payout)
	}
	if q.Len() != 0 {
		t.Fatalf("served customer still queued")
	}
	if inv.Len() != 1 || inv.Count("glow-worm") != 1 {
		t.Fatalf("expected only the glow-worm left, got %v", inv.Snapshot())
	}
}

func TestTryFulfillFailureLeavesState(t *testing.T) {
	tests := []struct {
		name    string
		items   []domain.ItemID
		id      domain.CustomerID
		wantErr error
	}{
		{"empty bag", nil, 1, domain.ErrInsufficientIngredients},
		{"one short", []domain.ItemID{"skull", "firefly"}, 1, domain.ErrInsufficientIngredients},
		{"wrong items", []domain.ItemID{"glow-worm", "glow-worm", "glow-worm"}, 1, domain.ErrInsufficientIngredients},
		{"unknown customer", []domain.ItemID{"skull", "firefly", "firefly"}, 9, domain.ErrUnknownCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, q, inv := setup(t, tt.items...)
			before := inv.Snapshot()
			cBefore := q.List()[0]

			payout, err := r.TryFulfill(tt.id, inv)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if payout != 0 {
				t.Fatalf("expected no payout, got %d", payout)
			}

			after := inv.Snapshot()
			if len(after) != len(before) {
				t.Fatalf("inventory changed: %v -> %v", before, after)
			}
			for item, n := range before {
				if after[item] != n {
					t.Fatalf("inventory changed: %v -> %v", before, after)
				}
			}
			if q.Len() != 1 || q.List()[0] != cBefore {
				t.Fatalf("customer changed: %+v", q.List())
			}
		})
	}
}

func TestTryFulfillAfterExpiry(t *testing.T) {
	r, q, inv := setup(t, "skull", "firefly", "firefly")
	q.ExpireDue(2 * time.Minute)

	if _, err := r.TryFulfill(1, inv); !errors.Is(err, domain.ErrUnknownCustomer) {
		t.Fatalf("expected ErrUnknownCustomer, got %v", err)
	}
	if inv.Len() != 3 {
		t.Fatalf("inventory consumed for an expired customer")
	}
}

func TestMissing(t *testing.T) {
	inv := inventory.New(9)
	if err := inv.Add("firefly"); err != nil {
		t.Fatalf("add: %v", err)
	}

	short := Missing(amulet, inv)
	if short["skull"] != 1 || short["firefly"] != 1 || len(short) != 2 {
		t.Fatalf("unexpected shortfall: %v", short)
	}
}
