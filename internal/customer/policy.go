package customer

import (
	"fmt"
	"time"

	"github.com/hammamikhairi/brewrush/internal/domain"
)

// Policy picks the recipe the next customer orders.
type Policy interface {
	Next(book []*domain.Recipe) *domain.Recipe
}

// Uniform draws every recipe with equal probability.
type Uniform struct {
	rng domain.Rand
}

// NewUniform returns a uniform policy drawing from rng.
func NewUniform(rng domain.Rand) *Uniform {
	return &Uniform{rng: rng}
}

// Next returns a random recipe, or nil for an empty book.
func (u *Uniform) Next(book []*domain.Recipe) *domain.Recipe {
	if len(book) == 0 {
		return nil
	}
	return book[u.rng.IntN(len(book))]
}

// RoundRobin walks the book in order, wrapping around.
type RoundRobin struct {
	next int
}

// Next returns the following recipe in book order.
func (r *RoundRobin) Next(book []*domain.Recipe) *domain.Recipe {
	if len(book) == 0 {
		return nil
	}
	rec := book[r.next%len(book)]
	r.next = (r.next + 1) % len(book)
	return rec
}

// NewPolicy builds a policy by name: "uniform" or "round-robin".
func NewPolicy(name string, rng domain.Rand) (Policy, error) {
	switch name {
	case "", "uniform":
		return NewUniform(rng), nil
	case "round-robin":
		return &RoundRobin{}, nil
	}
	return nil, fmt.Errorf("unknown spawn policy %q", name)
}

// Wait draws a patience in [MinWait, MaxWait] for recipe, at one second
// granularity.
func Wait(recipe *domain.Recipe, rng domain.Rand) time.Duration {
	lo, hi := recipe.MinWait, recipe.MaxWait
	if hi <= lo {
		return lo
	}
	span := int64((hi - lo) / time.Second)
	return lo + time.Duration(rng.Int64N(span+1))*time.Second
}
