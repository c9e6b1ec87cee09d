// Package domain defines the core types and interfaces for the potion shop.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// ItemID identifies a collectible ingredient ("herb", "red-mushroom").
type ItemID string

// RecipeID identifies an order type.
type RecipeID string

// MaxIngredients is the number of ingredient lines a recipe may carry.
const MaxIngredients = 2

// Recipe is a static order type: what a customer wants and what they pay.
type Recipe struct {
	ID          RecipeID
	Name        string
	Chapter     string
	Ingredients []Ingredient
	Payout      int
	MinWait     time.Duration
	MaxWait     time.Duration
}

// Ingredient is one (item, quantity) requirement of a recipe.
type Ingredient struct {
	Item     ItemID
	Quantity int
}

// Summary renders the ingredient list, e.g. "herb x1 + mushroom x1".
func (r *Recipe) Summary() string {
	parts := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		parts[i] = fmt.Sprintf("%s x%d", ing.Item, ing.Quantity)
	}
	return strings.Join(parts, " + ")
}

// Requirements returns the ingredient list as an item -> quantity map.
// Duplicate lines for the same item are summed.
func (r *Recipe) Requirements() map[ItemID]int {
	req := make(map[ItemID]int, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		req[ing.Item] += ing.Quantity
	}
	return req
}

// Validate checks the recipe is well formed.
func (r *Recipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("recipe has no id")
	}
	if len(r.Ingredients) == 0 || len(r.Ingredients) > MaxIngredients {
		return fmt.Errorf("recipe %s: needs 1..%d ingredients, has %d", r.ID, MaxIngredients, len(r.Ingredients))
	}
	for _, ing := range r.Ingredients {
		if ing.Item == "" || ing.Quantity <= 0 {
			return fmt.Errorf("recipe %s: bad ingredient %q x%d", r.ID, ing.Item, ing.Quantity)
		}
	}
	if r.Payout < 0 {
		return fmt.Errorf("recipe %s: negative payout", r.ID)
	}
	if r.MinWait <= 0 || r.MaxWait < r.MinWait {
		return fmt.Errorf("recipe %s: bad wait bounds %s..%s", r.ID, r.MinWait, r.MaxWait)
	}
	return nil
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID      RecipeID
	Name    string
	Chapter string
	Summary string
	Payout  int
}
