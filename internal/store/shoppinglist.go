package store

import (
	"context"
	"database/sql"

	"github.com/recipebook/apiserver/types"
)

// ShoppingListRepository handles persistence for grocery list entries.
type ShoppingListRepository struct {
	db *sql.DB
}

func NewShoppingListRepository(db *sql.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// Add inserts one row per ingredient inside a single transaction. Each insert
// is idempotent on the (user, recipe, ingredient) triple.
func (r *ShoppingListRepository) Add(ctx context.Context, userID int, recipeID, recipeName string, ingredients []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
		INSERT INTO recipe.shopping_list (user_id, recipe_id, recipe_name, ingredients)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING`
	for _, ingredient := range ingredients {
		if _, err := tx.ExecContext(ctx, query, userID, recipeID, recipeName, ingredient); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListByUser returns every entry on the user's list.
func (r *ShoppingListRepository) ListByUser(ctx context.Context, userID int) ([]types.ShoppingListEntry, error) {
	const query = `
		SELECT user_id, recipe_id, recipe_name, ingredients
		FROM recipe.shopping_list
		WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]types.ShoppingListEntry, 0)
	for rows.Next() {
		var entry types.ShoppingListEntry
		if err := rows.Scan(
			&entry.UserID,
			&entry.RecipeID,
			&entry.RecipeName,
			&entry.Ingredient,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Clear deletes every entry for the user.
func (r *ShoppingListRepository) Clear(ctx context.Context, userID int) error {
	const query = `DELETE FROM recipe.shopping_list WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// RemoveItem deletes the single matching row. A missing row is not an error.
func (r *ShoppingListRepository) RemoveItem(ctx context.Context, userID int, recipeID, ingredient string) error {
	const query = `DELETE FROM recipe.shopping_list WHERE user_id = $1 AND recipe_id = $2 AND ingredients = $3`
	_, err := r.db.ExecContext(ctx, query, userID, recipeID, ingredient)
	return err
}
