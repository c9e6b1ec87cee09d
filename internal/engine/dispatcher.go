package engine

import (
	"fmt"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

// Dispatcher routes one decoded action to the component that handles it.
type Dispatcher struct {
	log *logger.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(log *logger.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Apply performs action against s. Domain failures come back as errors
// for the session to show as a warning; nothing is changed when they do.
func (d *Dispatcher) Apply(action domain.Action, s *Session) error {
	switch a := action.(type) {
	case domain.Move:
		to, err := s.world.Exit(s.location, a.Dir)
		if err != nil {
			return err
		}
		if _, err := s.world.Move(s.location, to); err != nil {
			return err
		}
		s.enter(to)
		return nil

	case domain.Collect:
		return d.collect(a.Item, s)

	case domain.Fulfill:
		return d.fulfill(a.Customer, s)

	case domain.Discard:
		if err := s.inv.Remove(a.Item, 1); err != nil {
			return fmt.Errorf("discard: %w", err)
		}
		d.log.Debug("discarded %s", a.Item)
		return nil

	case domain.ReturnHome:
		home := s.world.Home()
		if s.location == home {
			return fmt.Errorf("%s: %w", s.world.Name(home), domain.ErrAlreadyThere)
		}
		s.enter(home)
		return nil

	case domain.NoOp:
		if a.Err != nil {
			return a.Err
		}
		return nil

	default:
		return fmt.Errorf("%T: %w", action, domain.ErrInvalidAction)
	}
}

func (d *Dispatcher) collect(item domain.ItemID, s *Session) error {
	if s.inv.Free() == 0 {
		return fmt.Errorf("cannot pick %s (%d/%d): %w", item, s.inv.Len(), s.inv.Cap(), domain.ErrInventoryFull)
	}
	got, err := s.world.Collect(s.location, item)
	if err != nil {
		return err
	}
	if err := s.inv.Add(got); err != nil {
		s.world.Restore(s.location, got)
		return err
	}
	s.emit(domain.Event{Kind: domain.EventCollected, Item: got})
	return nil
}

func (d *Dispatcher) fulfill(id domain.CustomerID, s *Session) error {
	if s.deliverAt != "" && s.location != s.deliverAt {
		return fmt.Errorf("orders are handed over at %s: %w", s.world.Name(s.deliverAt), domain.ErrWrongLocation)
	}
	c, err := s.queue.Get(id)
	if err != nil {
		return err
	}
	recipe := c.Recipe

	payout, err := s.resolver.TryFulfill(id, s.inv)
	if err != nil {
		return err
	}
	s.revenue += payout
	s.fulfilled++
	s.history = append(s.history, recipe.ID)
	s.emit(domain.Event{Kind: domain.EventFulfilled, Customer: id, Recipe: recipe.ID, Amount: payout})

	return s.fill()
}
