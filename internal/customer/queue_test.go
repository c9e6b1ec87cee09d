package customer

import (
	"errors"
	"testing"
	"time"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

var potion = &domain.Recipe{
	ID:          "health-potion",
	Ingredients: []domain.Ingredient{{Item: "herb", Quantity: 1}},
	Payout:      20,
	MinWait:     60 * time.Second,
	MaxWait:     120 * time.Second,
}

func newQueue(capacity int, opts ...Option) *Queue {
	return NewQueue(logger.New(logger.LevelOff, nil), capacity, opts...)
}

func TestSpawnRespectsCap(t *testing.T) {
	q := newQueue(2)

	for i := 0; i < 2; i++ {
		if _, err := q.Spawn(potion, time.Minute); err != nil {
			t.Fatalf("spawn %d: %v", i, err)
		}
	}
	if _, err := q.Spawn(potion, time.Minute); !errors.Is(err, domain.ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	if q.Len() != 2 || !q.Full() {
		t.Fatalf("expected full queue of 2, got %d", q.Len())
	}
}

func TestSpawnAssignsIncreasingIDs(t *testing.T) {
	q := newQueue(1)

	a, err := q.Spawn(potion, time.Minute)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if err := q.Remove(a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	b, err := q.Spawn(potion, time.Minute)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if b.ID <= a.ID {
		t.Fatalf("expected id after %d, got %d", a.ID, b.ID)
	}
}

func TestSpawnRejectsBadWait(t *testing.T) {
	q := newQueue(1)
	if _, err := q.Spawn(potion, 0); !errors.Is(err, domain.ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
	if q.Len() != 0 {
		t.Fatal("rejected spawn joined the queue")
	}
}

func TestExpireDueOrdering(t *testing.T) {
	q := newQueue(4)
	waits := []time.Duration{3 * time.Second, time.Second, 10 * time.Second, time.Second}
	for _, w := range waits {
		if _, err := q.Spawn(potion, w); err != nil {
			t.Fatalf("spawn: %v", err)
		}
	}

	expired := q.ExpireDue(5 * time.Second)

	// ids 2 and 4 had 1s left, id 1 had 3s.
	want := []domain.CustomerID{2, 4, 1}
	if len(expired) != len(want) {
		t.Fatalf("expected %d expired, got %d", len(want), len(expired))
	}
	for i, c := range expired {
		if c.ID != want[i] {
			t.Fatalf("position %d: expected #%d, got #%d", i, want[i], c.ID)
		}
		if c.State != domain.CustomerExpired || c.Remaining != 0 {
			t.Fatalf("customer #%d: state=%s remaining=%s", c.ID, c.State, c.Remaining)
		}
	}

	left := q.List()
	if len(left) != 1 || left[0].ID != 3 || left[0].Remaining != 5*time.Second {
		t.Fatalf("unexpected survivors: %+v", left)
	}
	if err := q.Check(); err != nil {
		t.Fatalf("invariant: %v", err)
	}
}

func TestExpireDueAgesIndependently(t *testing.T) {
	q := newQueue(3)
	for _, w := range []time.Duration{time.Minute, 2 * time.Minute} {
		if _, err := q.Spawn(potion, w); err != nil {
			t.Fatalf("spawn: %v", err)
		}
	}

	if got := q.ExpireDue(10 * time.Second); len(got) != 0 {
		t.Fatalf("expected no expiries, got %d", len(got))
	}
	if err := q.Remove(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	q.ExpireDue(-time.Second)

	c, err := q.Get(2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Remaining != 110*time.Second {
		t.Fatalf("expected 1m50s left, got %s", c.Remaining)
	}
}

func TestRemoveAndGetUnknown(t *testing.T) {
	q := newQueue(1)
	if err := q.Remove(7); !errors.Is(err, domain.ErrUnknownCustomer) {
		t.Fatalf("expected ErrUnknownCustomer, got %v", err)
	}
	if _, err := q.Get(7); !errors.Is(err, domain.ErrUnknownCustomer) {
		t.Fatalf("expected ErrUnknownCustomer, got %v", err)
	}
}

func TestImpatientFiresOnce(t *testing.T) {
	q := newQueue(3, WithImpatientAt(15*time.Second))
	if _, err := q.Spawn(potion, time.Minute); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	// Too short to ever be flagged.
	if _, err := q.Spawn(potion, 20*time.Second); err != nil {
		t.Fatalf("spawn: %v", err)
	}

	q.ExpireDue(40 * time.Second)
	if got := q.Impatient(); len(got) != 0 {
		t.Fatalf("expected nobody impatient yet, got %d", len(got))
	}

	q.ExpireDue(6 * time.Second)
	got := q.Impatient()
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected #1 impatient, got %+v", got)
	}
	if again := q.Impatient(); len(again) != 0 {
		t.Fatalf("alert repeated: %+v", again)
	}
}

func TestListIsCopy(t *testing.T) {
	q := newQueue(1)
	if _, err := q.Spawn(potion, time.Minute); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	list := q.List()
	list[0].Remaining = 0

	c, _ := q.Get(1)
	if c.Remaining != time.Minute {
		t.Fatal("List exposed live customers")
	}
}
