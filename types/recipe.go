package types

// Recipe is the normalized shape of an upstream catalog record. Recipes are
// derived from the catalog response on every request and never persisted.
type Recipe struct {
	// ID is the catalog's identifier for the recipe.
	ID string `json:"id"`

	// Name is the recipe title.
	Name string `json:"name"`

	// Category and Area classify the dish (e.g. "Seafood", "Japanese").
	Category string `json:"category"`
	Area     string `json:"area"`

	// Image is the URL of the recipe thumbnail hosted by the catalog.
	Image string `json:"image"`

	// Instructions holds the preparation steps in order.
	Instructions []string `json:"instructions"`

	// IngredientList holds "measure ingredient" strings in catalog order.
	IngredientList []string `json:"ingredientList"`
}
