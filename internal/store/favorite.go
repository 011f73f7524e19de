package store

import (
	"context"
	"database/sql"

	"github.com/recipebook/apiserver/types"
)

// FavoriteRepository handles persistence for saved recipes.
type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add upserts a favorite. Inserting an existing (user, recipe) pair is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, favorite types.Favorite) error {
	const query = `
		INSERT INTO recipe.favorites (user_id, id, name, image, category)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(
		ctx,
		query,
		favorite.UserID,
		favorite.RecipeID,
		favorite.Name,
		favorite.Image,
		favorite.Category,
	)
	return err
}

// Remove deletes the matching row. A missing row is not an error.
func (r *FavoriteRepository) Remove(ctx context.Context, userID int, recipeID string) error {
	const query = `DELETE FROM recipe.favorites WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, recipeID, userID)
	return err
}

// ListByUser returns every favorite of the user ordered by recipe name,
// ascending when asc is true and descending otherwise.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int, asc bool) ([]types.Favorite, error) {
	query := `SELECT user_id, id, name, image, category FROM recipe.favorites WHERE user_id = $1 ORDER BY name DESC`
	if asc {
		query = `SELECT user_id, id, name, image, category FROM recipe.favorites WHERE user_id = $1 ORDER BY name`
	}

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := make([]types.Favorite, 0)
	for rows.Next() {
		var favorite types.Favorite
		if err := rows.Scan(
			&favorite.UserID,
			&favorite.RecipeID,
			&favorite.Name,
			&favorite.Image,
			&favorite.Category,
		); err != nil {
			return nil, err
		}
		favorites = append(favorites, favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return favorites, nil
}
