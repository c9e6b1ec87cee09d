package domain

import "context"

// RecipeSource provides the static recipe catalog.
type RecipeSource interface {
	List() []RecipeSummary
	Get(id RecipeID) (*Recipe, error)
	All() []*Recipe
}

// Rand is the injectable randomness used for spawning and flavor text.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Int64N(n int64) int64
}

// RunStore persists results of finished sessions. Implementations can be
// in-memory or SQLite.
type RunStore interface {
	Save(ctx context.Context, run *RunRecord) error
	Recent(ctx context.Context, limit int) ([]RunRecord, error)
	Top(ctx context.Context, limit int) ([]RunRecord, error)
}

// Cue reacts to tick events outside the core, e.g. by playing a sound.
type Cue interface {
	Play(ctx context.Context, ev Event)
}
