// Package recipe provides the recipe book: the static catalog of orders a
// customer can place.
package recipe

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/brewrush/internal/config"
	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*MemorySource)(nil)

// MemorySource holds recipes in memory. It is never mutated after
// construction, so concurrent reads need no locking.
type MemorySource struct {
	recipes map[domain.RecipeID]*domain.Recipe
	order   []domain.RecipeID // book order, as loaded
	log     *logger.Logger
}

// NewMemorySource builds a catalog from the given recipes. Every recipe is
// validated; duplicate ids are rejected.
func NewMemorySource(log *logger.Logger, recipes []domain.Recipe) (*MemorySource, error) {
	src := &MemorySource{
		recipes: make(map[domain.RecipeID]*domain.Recipe, len(recipes)),
		log:     log,
	}
	for i := range recipes {
		r := recipes[i]
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := src.recipes[r.ID]; dup {
			return nil, fmt.Errorf("recipe %s: %w", r.ID, domain.ErrAlreadyExists)
		}
		r.Ingredients = append([]domain.Ingredient(nil), r.Ingredients...)
		src.recipes[r.ID] = &r
		src.order = append(src.order, r.ID)
	}
	if len(src.order) == 0 {
		return nil, fmt.Errorf("recipe book is empty")
	}
	log.Debug("loaded %d recipes", len(src.order))
	return src, nil
}

// FromConfig converts YAML recipe definitions into a catalog.
func FromConfig(log *logger.Logger, defs []config.RecipeDef) (*MemorySource, error) {
	recipes := make([]domain.Recipe, 0, len(defs))
	for _, d := range defs {
		r := domain.Recipe{
			ID:      domain.RecipeID(d.ID),
			Name:    d.Name,
			Chapter: d.Chapter,
			Payout:  d.Payout,
			MinWait: d.MinWait,
			MaxWait: d.MaxWait,
		}
		if r.Name == "" {
			r.Name = d.ID
		}
		for _, ing := range d.Ingredients {
			r.Ingredients = append(r.Ingredients, domain.Ingredient{
				Item:     domain.ItemID(ing.Item),
				Quantity: ing.Qty,
			})
		}
		recipes = append(recipes, r)
	}
	return NewMemorySource(log, recipes)
}

// List returns summaries of all recipes in book order.
func (s *MemorySource) List() []domain.RecipeSummary {
	out := make([]domain.RecipeSummary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, summarize(s.recipes[id]))
	}
	return out
}

// Get returns a recipe by ID.
func (s *MemorySource) Get(id domain.RecipeID) (*domain.Recipe, error) {
	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("recipe not found: %s", id)
		return nil, fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	return r, nil
}

// All returns every recipe in book order. The recipes are shared and must
// not be modified.
func (s *MemorySource) All() []*domain.Recipe {
	out := make([]*domain.Recipe, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.recipes[id])
	}
	return out
}

// Chapters groups the recipe summaries by chapter, keeping the order in
// which chapters first appear.
func (s *MemorySource) Chapters() ([]string, map[string][]domain.RecipeSummary) {
	var titles []string
	byChapter := make(map[string][]domain.RecipeSummary)
	for _, sum := range s.List() {
		if _, seen := byChapter[sum.Chapter]; !seen {
			titles = append(titles, sum.Chapter)
		}
		byChapter[sum.Chapter] = append(byChapter[sum.Chapter], sum)
	}
	return titles, byChapter
}

// Search returns recipes whose name, chapter or ingredients contain the query.
func (s *MemorySource) Search(query string) []domain.RecipeSummary {
	q := strings.ToLower(query)
	var out []domain.RecipeSummary
	for _, id := range s.order {
		r := s.recipes[id]
		if matches(r, q) {
			out = append(out, summarize(r))
		}
	}
	return out
}

func matches(r *domain.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Chapter), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(string(ing.Item)), query) {
			return true
		}
	}
	return false
}

func summarize(r *domain.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:      r.ID,
		Name:    r.Name,
		Chapter: r.Chapter,
		Summary: r.Summary(),
		Payout:  r.Payout,
	}
}
