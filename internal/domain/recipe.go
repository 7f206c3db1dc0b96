// Package domain defines the core types and interfaces for the recipe
// finder. All other packages depend on domain; domain depends on nothing.
package domain

// Recipe is the full record fetched on demand by slug. It lives only
// for the current view; nothing is persisted.
type Recipe struct {
	ID               int
	Slug             string
	Title            string
	Rating           float64 // 0–5, 0 means unrated
	PrepTimeMinutes  int
	Images           []RecipeImage
	Ingredients      []RecipeIngredient
	InstructionSteps []InstructionStep
	BasicIngredients []string
}

// RecipeSummary is a lightweight view of a recipe for list and search
// dropdowns. The slug is the external lookup key.
type RecipeSummary struct {
	Slug  string
	Title string
}

// IngredientSummary is a lightweight view of an ingredient for the
// ingredient search dropdown.
type IngredientSummary struct {
	ID   int
	Name string
}

// RecipeImage references one rendition of an image at a given width.
type RecipeImage struct {
	URL   string
	Width int
	ID    int
}

// RecipeIngredient pairs a free-text amount with an ingredient.
type RecipeIngredient struct {
	Amount     string
	Ingredient IngredientDetail
}

// IngredientDetail carries the ingredient identity plus its image
// renditions, used by the export document.
type IngredientDetail struct {
	ID     int
	Name   string
	Images []RecipeImage
}

// InstructionStep is a single ordered cooking instruction.
type InstructionStep struct {
	ID     int
	Order  int
	Text   string
	Images []RecipeImage
}
