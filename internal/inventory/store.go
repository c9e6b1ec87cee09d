// Package inventory holds what the witch is carrying.
package inventory

import (
	"fmt"
	"sort"

	"github.com/hammamikhairi/brewrush/internal/domain"
)

// DefaultCapacity is the number of slots in the witch's bag.
const DefaultCapacity = 9

// Store is a bounded multiset of items. Every unit held takes one slot.
type Store struct {
	items map[domain.ItemID]int
	used  int
	cap   int
}

// New creates an empty store. A non-positive capacity falls back to
// DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		items: make(map[domain.ItemID]int),
		cap:   capacity,
	}
}

// Add puts one unit of item in the bag.
func (s *Store) Add(item domain.ItemID) error {
	if s.used >= s.cap {
		return fmt.Errorf("cannot carry %s (%d/%d): %w", item, s.used, s.cap, domain.ErrInventoryFull)
	}
	s.items[item]++
	s.used++
	return nil
}

// Remove takes qty units of item out of the bag.
func (s *Store) Remove(item domain.ItemID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("remove %d %s: %w", qty, item, domain.ErrInvalidAction)
	}
	have := s.items[item]
	if have < qty {
		return fmt.Errorf("need %d %s, have %d: %w", qty, item, have, domain.ErrInsufficientIngredients)
	}
	s.take(item, qty)
	return nil
}

// RemoveAll removes every (item, qty) pair, or nothing if any is short.
func (s *Store) RemoveAll(want map[domain.ItemID]int) error {
	for _, item := range sortedKeys(want) {
		if have := s.items[item]; have < want[item] {
			return fmt.Errorf("need %d %s, have %d: %w", want[item], item, have, domain.ErrInsufficientIngredients)
		}
	}
	for item, qty := range want {
		if qty > 0 {
			s.take(item, qty)
		}
	}
	return nil
}

func (s *Store) take(item domain.ItemID, qty int) {
	left := s.items[item] - qty
	if left == 0 {
		delete(s.items, item)
	} else {
		s.items[item] = left
	}
	s.used -= qty
}

// Contains reports whether at least qty units of item are held.
func (s *Store) Contains(item domain.ItemID, qty int) bool {
	return s.items[item] >= qty
}

// Count returns how many units of item are held.
func (s *Store) Count(item domain.ItemID) int { return s.items[item] }

// Len returns the number of occupied slots.
func (s *Store) Len() int { return s.used }

// Cap returns the slot capacity.
func (s *Store) Cap() int { return s.cap }

// Free returns the number of empty slots.
func (s *Store) Free() int { return s.cap - s.used }

// Snapshot returns a copy of the held counts.
func (s *Store) Snapshot() map[domain.ItemID]int {
	out := make(map[domain.ItemID]int, len(s.items))
	for item, n := range s.items {
		out[item] = n
	}
	return out
}

// Items returns the distinct held items, sorted by id.
func (s *Store) Items() []domain.ItemID {
	return sortedKeys(s.items)
}

// Check verifies the store's invariants: no count below one, and the slot
// total matches and stays within capacity.
func (s *Store) Check() error {
	total := 0
	for item, n := range s.items {
		if n <= 0 {
			return fmt.Errorf("inventory holds %d %s: %w", n, item, domain.ErrInvariant)
		}
		total += n
	}
	if total != s.used {
		return fmt.Errorf("inventory counts %d, tracked %d: %w", total, s.used, domain.ErrInvariant)
	}
	if total > s.cap {
		return fmt.Errorf("inventory %d/%d: %w", total, s.cap, domain.ErrInvariant)
	}
	return nil
}

func sortedKeys(m map[domain.ItemID]int) []domain.ItemID {
	out := make([]domain.ItemID, 0, len(m))
	for item := range m {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
