// Package recipe provides recipe source implementations.
package recipe

import (
	"context"
	"sort"
	"sync"

	"github.com/hammamikhairi/forager/internal/domain"
	"github.com/hammamikhairi/forager/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*MemorySource)(nil)

// MemorySource holds recipes in memory. Safe for concurrent reads. It
// backs the -offline flag and the controller tests.
type MemorySource struct {
	mu      sync.RWMutex
	recipes map[string]*domain.Recipe
	log     *logger.Logger
}

// NewMemorySource creates a recipe source preloaded with built-in recipes.
func NewMemorySource(log *logger.Logger) *MemorySource {
	src := &MemorySource{
		recipes: make(map[string]*domain.Recipe),
		log:     log,
	}
	src.seed()
	return src
}

// Get returns a recipe by slug.
func (s *MemorySource) Get(ctx context.Context, slug string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[slug]
	if !ok {
		s.log.Debug("recipe not found: %s", slug)
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// List returns summaries of all available recipes, sorted by title.
func (s *MemorySource) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all recipes, count=%d", len(s.recipes))

	out := make([]domain.RecipeSummary, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, domain.RecipeSummary{Slug: r.Slug, Title: r.Title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// ListIngredients returns every distinct ingredient across all recipes,
// sorted by name.
func (s *MemorySource) ListIngredients(ctx context.Context) ([]domain.IngredientSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int]domain.IngredientSummary)
	for _, r := range s.recipes {
		for _, ing := range r.Ingredients {
			d := ing.Ingredient
			seen[d.ID] = domain.IngredientSummary{ID: d.ID, Name: d.Name}
		}
	}
	out := make([]domain.IngredientSummary, 0, len(seen))
	for _, ing := range seen {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	s.log.Debug("listing ingredients, count=%d", len(out))
	return out, nil
}

// ListByIngredient returns summaries of recipes containing the given
// ingredient, sorted by title.
func (s *MemorySource) ListByIngredient(ctx context.Context, ingredientID int) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.RecipeSummary
	for _, r := range s.recipes {
		for _, ing := range r.Ingredients {
			if ing.Ingredient.ID == ingredientID {
				out = append(out, domain.RecipeSummary{Slug: r.Slug, Title: r.Title})
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	s.log.Debug("ingredient %d matches %d recipes", ingredientID, len(out))
	return out, nil
}

// Ingredient IDs shared across the seed recipes.
const (
	ingGarlic = iota + 1
	ingTofu
	ingSoySauce
	ingSpaghetti
	ingChicken
	ingCream
	ingBroccoli
	ingGinger
	ingRice
)

// seed populates the source with built-in recipes.
func (s *MemorySource) seed() {
	recipes := []*domain.Recipe{
		s.spicyTofuBowl(),
		s.chickenAlfredo(),
		s.gingerBroccoliStirFry(),
	}
	for _, r := range recipes {
		s.recipes[r.Slug] = r
	}
	s.log.Debug("seeded %d recipes", len(recipes))
}

func (s *MemorySource) spicyTofuBowl() *domain.Recipe {
	return &domain.Recipe{
		ID:              1,
		Slug:            "spicy-tofu-bowl",
		Title:           "Spicy Tofu Bowl",
		Rating:          4.6,
		PrepTimeMinutes: 25,
		Images: []domain.RecipeImage{
			{URL: "https://img.example.com/spicy-tofu-bowl-400.jpg", Width: 400, ID: 101},
			{URL: "https://img.example.com/spicy-tofu-bowl-700.jpg", Width: 700, ID: 102},
		},
		Ingredients: []domain.RecipeIngredient{
			{Amount: "200g", Ingredient: domain.IngredientDetail{ID: ingTofu, Name: "firm tofu"}},
			{Amount: "3 cloves", Ingredient: domain.IngredientDetail{ID: ingGarlic, Name: "garlic"}},
			{Amount: "2 tbsp", Ingredient: domain.IngredientDetail{ID: ingSoySauce, Name: "soy sauce"}},
			{Amount: "1 cup", Ingredient: domain.IngredientDetail{ID: ingRice, Name: "jasmine rice"}},
		},
		InstructionSteps: []domain.InstructionStep{
			{ID: 11, Order: 1, Text: "Press the tofu for 15 minutes, then cube it."},
			{ID: 12, Order: 2, Text: "Fry the cubes until golden on all sides."},
			{ID: 13, Order: 3, Text: "Toss with minced garlic, soy sauce, and chili oil. Serve over rice."},
		},
		BasicIngredients: []string{"chili oil", "vegetable oil", "salt"},
	}
}

func (s *MemorySource) chickenAlfredo() *domain.Recipe {
	return &domain.Recipe{
		ID:              2,
		Slug:            "chicken-alfredo",
		Title:           "Chicken Alfredo",
		Rating:          4.2,
		PrepTimeMinutes: 35,
		Images: []domain.RecipeImage{
			{URL: "https://img.example.com/chicken-alfredo-700.jpg", Width: 700, ID: 201},
		},
		Ingredients: []domain.RecipeIngredient{
			{Amount: "250g", Ingredient: domain.IngredientDetail{ID: ingSpaghetti, Name: "spaghetti"}},
			{Amount: "2 breasts", Ingredient: domain.IngredientDetail{ID: ingChicken, Name: "chicken breast"}},
			{Amount: "1 cup", Ingredient: domain.IngredientDetail{ID: ingCream, Name: "creme fraiche"}},
			{Amount: "4 cloves", Ingredient: domain.IngredientDetail{ID: ingGarlic, Name: "garlic"}},
		},
		InstructionSteps: []domain.InstructionStep{
			{ID: 21, Order: 1, Text: "Boil salted water and cook the spaghetti until al dente."},
			{ID: 22, Order: 2, Text: "Sear the seasoned chicken, about 6 minutes per side. Rest and slice."},
			{ID: 23, Order: 3, Text: "Soften the garlic, stir in the creme fraiche, and simmer gently."},
			{ID: 24, Order: 4, Text: "Toss the pasta in the sauce and top with the chicken."},
		},
		BasicIngredients: []string{"olive oil", "salt", "black pepper"},
	}
}

func (s *MemorySource) gingerBroccoliStirFry() *domain.Recipe {
	return &domain.Recipe{
		ID:              3,
		Slug:            "ginger-broccoli-stir-fry",
		Title:           "Ginger Broccoli Stir Fry",
		Rating:          4.8,
		PrepTimeMinutes: 15,
		Images: []domain.RecipeImage{
			{URL: "https://img.example.com/ginger-broccoli-350.jpg", Width: 350, ID: 301},
			{URL: "https://img.example.com/ginger-broccoli-1000.jpg", Width: 1000, ID: 302},
		},
		Ingredients: []domain.RecipeIngredient{
			{Amount: "2 cups", Ingredient: domain.IngredientDetail{ID: ingBroccoli, Name: "broccoli florets"}},
			{Amount: "1 tbsp", Ingredient: domain.IngredientDetail{ID: ingGinger, Name: "fresh ginger"}},
			{Amount: "3 cloves", Ingredient: domain.IngredientDetail{ID: ingGarlic, Name: "garlic"}},
			{Amount: "2 tbsp", Ingredient: domain.IngredientDetail{ID: ingSoySauce, Name: "soy sauce"}},
		},
		InstructionSteps: []domain.InstructionStep{
			{ID: 31, Order: 1, Text: "Heat a wok on high until it just starts to smoke."},
			{ID: 32, Order: 2, Text: "Stir-fry the broccoli for 3 minutes, letting it char a little."},
			{ID: 33, Order: 3, Text: "Add garlic and ginger for 30 seconds, then the soy sauce. Toss and serve."},
		},
		BasicIngredients: []string{"vegetable oil", "sesame oil"},
	}
}
