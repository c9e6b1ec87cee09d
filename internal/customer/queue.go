// Package customer manages the shop's waiting line: who is waiting, for
// what, and for how much longer.
package customer

import (
	"fmt"
	"sort"
	"time"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

// Option configures a Queue.
type Option func(*Queue)

// WithImpatientAt sets how close to leaving a customer must be to raise
// the "running out of patience" alert. Zero disables the alert.
func WithImpatientAt(d time.Duration) Option {
	return func(q *Queue) {
		q.impatientAt = d
	}
}

// Queue holds the waiting customers in arrival order. IDs increase
// monotonically and are never reused. Not safe for concurrent use.
type Queue struct {
	active      []*domain.Customer
	cap         int
	nextID      domain.CustomerID
	impatientAt time.Duration
	log         *logger.Logger
}

// NewQueue creates an empty queue holding at most capacity customers.
func NewQueue(log *logger.Logger, capacity int, opts ...Option) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	q := &Queue{
		cap:    capacity,
		nextID: 1,
		log:    log,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Spawn admits a new customer ordering recipe, willing to wait for wait.
func (q *Queue) Spawn(recipe *domain.Recipe, wait time.Duration) (*domain.Customer, error) {
	if len(q.active) >= q.cap {
		return nil, fmt.Errorf("%d/%d waiting: %w", len(q.active), q.cap, domain.ErrQueueFull)
	}
	if recipe == nil || wait <= 0 {
		return nil, fmt.Errorf("spawn with recipe=%v wait=%s: %w", recipe != nil, wait, domain.ErrInvariant)
	}

	c := &domain.Customer{
		ID:        q.nextID,
		Recipe:    recipe,
		Patience:  wait,
		Remaining: wait,
		State:     domain.CustomerWaiting,
	}
	q.nextID++
	q.active = append(q.active, c)
	q.log.Debug("customer #%d wants %s (%s)", c.ID, recipe.ID, wait)
	return c, nil
}

// ExpireDue ages every waiting customer by elapsed and removes those whose
// patience ran out. Expired customers are returned ordered by how much
// patience they had at the start of the call, then by id.
func (q *Queue) ExpireDue(elapsed time.Duration) []*domain.Customer {
	if elapsed < 0 {
		elapsed = 0
	}

	type due struct {
		c     *domain.Customer
		start time.Duration
	}
	var expired []due
	kept := q.active[:0]
	for _, c := range q.active {
		start := c.Remaining
		c.Remaining -= elapsed
		if c.Remaining > 0 {
			kept = append(kept, c)
			continue
		}
		c.Remaining = 0
		c.State = domain.CustomerExpired
		expired = append(expired, due{c: c, start: start})
	}
	for i := len(kept); i < len(q.active); i++ {
		q.active[i] = nil
	}
	q.active = kept

	sort.Slice(expired, func(i, j int) bool {
		if expired[i].start != expired[j].start {
			return expired[i].start < expired[j].start
		}
		return expired[i].c.ID < expired[j].c.ID
	})

	out := make([]*domain.Customer, len(expired))
	for i, d := range expired {
		out[i] = d.c
		q.log.Debug("customer #%d left without %s", d.c.ID, d.c.Recipe.ID)
	}
	return out
}

// Impatient returns the customers that just crossed the impatience
// threshold. Each customer is reported at most once, and only when its
// patience was at least twice the threshold to begin with.
func (q *Queue) Impatient() []*domain.Customer {
	if q.impatientAt <= 0 {
		return nil
	}
	var out []*domain.Customer
	for _, c := range q.active {
		if c.Alerted || c.Remaining > q.impatientAt || c.Patience < q.impatientAt*2 {
			continue
		}
		c.Alerted = true
		out = append(out, c)
	}
	return out
}

// Remove drops a customer from the line.
func (q *Queue) Remove(id domain.CustomerID) error {
	for i, c := range q.active {
		if c.ID != id {
			continue
		}
		copy(q.active[i:], q.active[i+1:])
		q.active[len(q.active)-1] = nil
		q.active = q.active[:len(q.active)-1]
		return nil
	}
	return fmt.Errorf("customer #%d: %w", id, domain.ErrUnknownCustomer)
}

// Get returns the live customer with the given id.
func (q *Queue) Get(id domain.CustomerID) (*domain.Customer, error) {
	for _, c := range q.active {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("customer #%d: %w", id, domain.ErrUnknownCustomer)
}

// List returns copies of the waiting customers in arrival order.
func (q *Queue) List() []domain.Customer {
	out := make([]domain.Customer, len(q.active))
	for i, c := range q.active {
		out[i] = *c
	}
	return out
}

// Len returns the number of waiting customers.
func (q *Queue) Len() int { return len(q.active) }

// Cap returns the maximum number of concurrent customers.
func (q *Queue) Cap() int { return q.cap }

// Full reports whether another customer can be admitted.
func (q *Queue) Full() bool { return len(q.active) >= q.cap }

// Check verifies the queue's invariants.
func (q *Queue) Check() error {
	if len(q.active) > q.cap {
		return fmt.Errorf("queue %d/%d: %w", len(q.active), q.cap, domain.ErrInvariant)
	}
	for _, c := range q.active {
		if c.Remaining <= 0 {
			return fmt.Errorf("customer #%d waiting with %s left: %w", c.ID, c.Remaining, domain.ErrInvariant)
		}
		if c.State != domain.CustomerWaiting {
			return fmt.Errorf("customer #%d is %s but still queued: %w", c.ID, c.State, domain.ErrInvariant)
		}
	}
	return nil
}
