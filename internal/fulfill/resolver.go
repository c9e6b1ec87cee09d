// Package fulfill matches what the witch carries against what a customer
// ordered, and settles the order.
package fulfill

import (
	"fmt"

	"github.com/hammamikhairi/brewrush/internal/customer"
	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/inventory"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

// Resolver settles orders for one queue.
type Resolver struct {
	queue *customer.Queue
	log   *logger.Logger
}

// NewResolver returns a resolver serving the given queue.
func NewResolver(queue *customer.Queue, log *logger.Logger) *Resolver {
	return &Resolver{queue: queue, log: log}
}

// Missing returns what the inventory lacks to fulfill recipe, as
// item -> shortfall. An empty map means the order can be served.
func Missing(recipe *domain.Recipe, inv *inventory.Store) map[domain.ItemID]int {
	short := make(map[domain.ItemID]int)
	for item, qty := range recipe.Requirements() {
		if have := inv.Count(item); have < qty {
			short[item] = qty - have
		}
	}
	return short
}

// TryFulfill serves customer id from inv. On success every required unit is
// removed, the customer is marked fulfilled and leaves the queue, and the
// recipe's payout is returned. On failure nothing changes.
func (r *Resolver) TryFulfill(id domain.CustomerID, inv *inventory.Store) (int, error) {
	c, err := r.queue.Get(id)
	if err != nil {
		return 0, err
	}
	if c.State != domain.CustomerWaiting {
		return 0, fmt.Errorf("customer #%d is %s: %w", id, c.State, domain.ErrUnknownCustomer)
	}

	if short := Missing(c.Recipe, inv); len(short) > 0 {
		return 0, fmt.Errorf("%s for #%d: %w", c.Recipe.Name, id, domain.ErrInsufficientIngredients)
	}
	if err := inv.RemoveAll(c.Recipe.Requirements()); err != nil {
		return 0, err
	}

	c.State = domain.CustomerFulfilled
	if err := r.queue.Remove(id); err != nil {
		return 0, fmt.Errorf("removing served customer #%d: %v: %w", id, err, domain.ErrInvariant)
	}
	r.log.Info("served #%d %s for %d", id, c.Recipe.ID, c.Recipe.Payout)
	return c.Recipe.Payout, nil
}
