package domain

// ItemKind tags a SearchableItem.
type ItemKind int

const (
	ItemRecipe ItemKind = iota
	ItemIngredient
)

// SearchableItem is a tagged variant over the two summary types that
// can appear in a suggestion dropdown. Exactly one of Recipe or
// Ingredient is meaningful, selected by Kind.
type SearchableItem struct {
	Kind       ItemKind
	Recipe     RecipeSummary
	Ingredient IngredientSummary
}

// RecipeItem wraps a recipe summary as a searchable item.
func RecipeItem(s RecipeSummary) SearchableItem {
	return SearchableItem{Kind: ItemRecipe, Recipe: s}
}

// IngredientItem wraps an ingredient summary as a searchable item.
func IngredientItem(s IngredientSummary) SearchableItem {
	return SearchableItem{Kind: ItemIngredient, Ingredient: s}
}

// Key returns the display text the fuzzy matcher scores against.
func (it SearchableItem) Key() string {
	switch it.Kind {
	case ItemRecipe:
		return it.Recipe.Title
	case ItemIngredient:
		return it.Ingredient.Name
	default:
		return ""
	}
}
