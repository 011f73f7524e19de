package types

// ShoppingListEntry is one ingredient on a user's grocery list, keyed by the
// (user, recipe, ingredient) triple.
type ShoppingListEntry struct {
	UserID     int    `json:"-" db:"user_id"`
	RecipeID   string `json:"id" db:"recipe_id"`
	RecipeName string `json:"name" db:"recipe_name"`
	Ingredient string `json:"ingredient" db:"ingredients"`
}
