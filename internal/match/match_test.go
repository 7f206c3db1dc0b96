package match

import (
	"reflect"
	"testing"

	"github.com/hammamikhairi/forager/internal/domain"
)

func summaries(titles ...string) []domain.RecipeSummary {
	out := make([]domain.RecipeSummary, len(titles))
	for i, t := range titles {
		out[i] = domain.RecipeSummary{Slug: t, Title: t}
	}
	return out
}

func titleKey(s domain.RecipeSummary) string { return s.Title }

func TestTop(t *testing.T) {
	candidates := summaries(
		"Spicy Tofu Bowl",
		"Chicken Katsu Curry",
		"Tofu Pad Thai",
		"Beef Stroganoff",
		"Crispy Tofu Tacos",
	)

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"empty query yields nothing", "", 5, nil},
		{"zero limit yields nothing", "tofu", 0, nil},
		{"no match yields nothing", "zzzzzz", 5, nil},
		{"matches are capped at limit", "tofu", 2, []string{"Tofu Pad Thai", "Spicy Tofu Bowl"}},
		{"partial word still matches", "tof", 5, []string{"Tofu Pad Thai", "Spicy Tofu Bowl", "Crispy Tofu Tacos"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Top(tt.query, candidates, titleKey, tt.limit)
			var titles []string
			for _, s := range got {
				titles = append(titles, s.Title)
			}
			if !reflect.DeepEqual(titles, tt.want) {
				t.Fatalf("Top(%q, limit=%d) = %v, want %v", tt.query, tt.limit, titles, tt.want)
			}
		})
	}
}

func TestTopEmptyCandidates(t *testing.T) {
	if got := Top("tofu", nil, titleKey, 5); got != nil {
		t.Fatalf("expected nil for empty candidates, got %v", got)
	}
}

func TestTopIdempotent(t *testing.T) {
	candidates := summaries("Garlic Bread", "Garlic Butter Shrimp", "Bread Pudding")
	first := Top("garlic", candidates, titleKey, 5)
	second := Top("garlic", candidates, titleKey, 5)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different rankings: %v vs %v", first, second)
	}
	if len(first) == 0 {
		t.Fatal("expected at least one match for 'garlic'")
	}
}

func TestTopTiesKeepCandidateOrder(t *testing.T) {
	// Identical titles score identically; order must follow the input.
	candidates := []domain.RecipeSummary{
		{Slug: "a", Title: "Pancakes"},
		{Slug: "b", Title: "Pancakes"},
		{Slug: "c", Title: "Pancakes"},
	}
	got := Top("pancakes", candidates, titleKey, 5)
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].Slug != want {
			t.Fatalf("tie order broken at %d: got %s, want %s", i, got[i].Slug, want)
		}
	}
}

func TestTopWorksOnSearchableItems(t *testing.T) {
	items := []domain.SearchableItem{
		domain.IngredientItem(domain.IngredientSummary{ID: 1, Name: "garlic"}),
		domain.IngredientItem(domain.IngredientSummary{ID: 2, Name: "ginger"}),
		domain.IngredientItem(domain.IngredientSummary{ID: 3, Name: "galangal"}),
	}
	got := Top("garli", items, domain.SearchableItem.Key, 5)
	if len(got) == 0 || got[0].Ingredient.Name != "garlic" {
		t.Fatalf("expected garlic first, got %v", got)
	}
}
