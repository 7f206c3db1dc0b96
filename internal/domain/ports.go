package domain

import "context"

// RecipeSource provides recipe and ingredient lookups. Implementations
// can be API-backed (the remote recipe service) or in-memory for tests
// and offline use.
type RecipeSource interface {
	Get(ctx context.Context, slug string) (*Recipe, error)
	List(ctx context.Context) ([]RecipeSummary, error)
	ListIngredients(ctx context.Context) ([]IngredientSummary, error)
	ListByIngredient(ctx context.Context, ingredientID int) ([]RecipeSummary, error)
}

// ImageResolver picks the rendition of an image set nearest a target
// width and fetches its bytes. An empty image set or a fetch failure
// yields (nil, nil): missing pictures degrade the document, they never
// fail an operation.
type ImageResolver interface {
	Resolve(ctx context.Context, images []RecipeImage, targetWidth int) ([]byte, error)
}
