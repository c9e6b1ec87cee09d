package recipe

import (
	"errors"
	"testing"
	"time"

	"github.com/hammamikhairi/brewrush/internal/config"
	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

func defaultSource(t *testing.T) *MemorySource {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	src, err := FromConfig(logger.New(logger.LevelOff, nil), cfg.World.Recipes)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	return src
}

func TestMemorySourceList(t *testing.T) {
	src := defaultSource(t)

	list := src.List()
	if len(list) != 8 {
		t.Fatalf("expected 8 recipes, got %d", len(list))
	}
	if list[0].ID != "health-potion" {
		t.Fatalf("expected book order, first is %s", list[0].ID)
	}
	if list[0].Summary != "red-mushroom x1 + spring-water x1" {
		t.Fatalf("unexpected summary %q", list[0].Summary)
	}
}

func TestMemorySourceGet(t *testing.T) {
	src := defaultSource(t)

	tests := []struct {
		id      domain.RecipeID
		wantErr error
	}{
		{"health-potion", nil},
		{"banishing-sigil", nil},
		{"nonexistent", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			r, err := src.Get(tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.ID != tt.id {
				t.Fatalf("expected ID %s, got %s", tt.id, r.ID)
			}
			if len(r.Ingredients) == 0 || len(r.Ingredients) > domain.MaxIngredients {
				t.Fatalf("recipe has %d ingredient lines", len(r.Ingredients))
			}
		})
	}
}

func TestMemorySourceSearch(t *testing.T) {
	src := defaultSource(t)

	tests := []struct {
		query string
		want  int
	}{
		{"skull", 3},
		{"hauntings", 2},
		{"potion", 1},
		{"nonexistent-query-xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := len(src.Search(tt.query)); got != tt.want {
				t.Fatalf("query=%q: expected %d results, got %d", tt.query, tt.want, got)
			}
		})
	}
}

func TestChapters(t *testing.T) {
	src := defaultSource(t)

	titles, byChapter := src.Chapters()
	want := []string{"Wounds", "Ailments", "Curses", "Hauntings"}
	if len(titles) != len(want) {
		t.Fatalf("expected %v, got %v", want, titles)
	}
	for i, title := range want {
		if titles[i] != title {
			t.Fatalf("chapter %d: expected %s, got %s", i, title, titles[i])
		}
		if len(byChapter[title]) != 2 {
			t.Fatalf("chapter %s: expected 2 recipes, got %d", title, len(byChapter[title]))
		}
	}
}

func TestNewMemorySourceRejects(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	good := domain.Recipe{
		ID:          "tea",
		Ingredients: []domain.Ingredient{{Item: "herb", Quantity: 1}},
		Payout:      3,
		MinWait:     time.Second,
		MaxWait:     2 * time.Second,
	}

	tests := []struct {
		name    string
		recipes []domain.Recipe
	}{
		{"empty book", nil},
		{"duplicate", []domain.Recipe{good, good}},
		{"three ingredients", []domain.Recipe{{
			ID: "stew",
			Ingredients: []domain.Ingredient{
				{Item: "a", Quantity: 1}, {Item: "b", Quantity: 1}, {Item: "c", Quantity: 1},
			},
			MinWait: time.Second,
			MaxWait: time.Second,
		}}},
		{"zero quantity", []domain.Recipe{{
			ID:          "air",
			Ingredients: []domain.Ingredient{{Item: "a", Quantity: 0}},
			MinWait:     time.Second,
			MaxWait:     time.Second,
		}}},
		{"inverted wait", []domain.Recipe{{
			ID:          "slow",
			Ingredients: []domain.Ingredient{{Item: "a", Quantity: 1}},
			MinWait:     2 * time.Second,
			MaxWait:     time.Second,
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMemorySource(log, tt.recipes); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
