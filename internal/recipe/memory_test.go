package recipe

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/hammamikhairi/forager/internal/domain"
	"github.com/hammamikhairi/forager/internal/logger"
)

func setupSource(t *testing.T) (*MemorySource, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	return NewMemorySource(log), context.Background()
}

func TestGet(t *testing.T) {
	src, ctx := setupSource(t)

	r, err := src.Get(ctx, "spicy-tofu-bowl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Spicy Tofu Bowl" {
		t.Fatalf("expected Spicy Tofu Bowl, got %q", r.Title)
	}

	_, err = src.Get(ctx, "nonexistent")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSorted(t *testing.T) {
	src, ctx := setupSource(t)

	got, err := src.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) < 3 {
		t.Fatalf("expected at least 3 seeded recipes, got %d", len(got))
	}
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Title < got[j].Title }) {
		t.Fatalf("list is not sorted by title: %+v", got)
	}
}

func TestListIngredientsDeduplicates(t *testing.T) {
	src, ctx := setupSource(t)

	got, err := src.ListIngredients(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[int]bool)
	for _, ing := range got {
		if seen[ing.ID] {
			t.Fatalf("ingredient %d listed twice", ing.ID)
		}
		seen[ing.ID] = true
	}
	// Garlic appears in all three seed recipes but must be listed once.
	if !seen[ingGarlic] {
		t.Fatal("expected garlic in ingredient list")
	}
}

func TestListByIngredient(t *testing.T) {
	src, ctx := setupSource(t)

	got, err := src.ListByIngredient(ctx, ingGarlic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 garlic recipes, got %d", len(got))
	}

	got, err = src.ListByIngredient(ctx, 9999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no recipes for unknown ingredient, got %d", len(got))
	}
}
