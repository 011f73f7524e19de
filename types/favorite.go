package types

// Favorite is a recipe saved by a user. The (user, recipe) pair is unique;
// inserting an existing pair is a no-op.
type Favorite struct {
	UserID   int    `json:"-" db:"user_id"`
	RecipeID string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Image    string `json:"image" db:"image"`
	Category string `json:"category" db:"category"`
}
