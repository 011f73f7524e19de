package services

import (
	"context"

	"github.com/recipebook/apiserver/types"
)

// sortAscending is the only sort value that produces ascending order; every
// other value, including an absent one, sorts descending.
const sortAscending = "a-z"

// FavoriteRepository defines persistence operations for saved recipes.
type FavoriteRepository interface {
	Add(ctx context.Context, favorite types.Favorite) error
	Remove(ctx context.Context, userID int, recipeID string) error
	ListByUser(ctx context.Context, userID int, asc bool) ([]types.Favorite, error)
}

// FavoriteService encapsulates favorites use-cases.
type FavoriteService struct {
	repo FavoriteRepository
}

func NewFavoriteService(repo FavoriteRepository) *FavoriteService {
	return &FavoriteService{repo: repo}
}

func (s *FavoriteService) Add(ctx context.Context, favorite types.Favorite) error {
	return s.repo.Add(ctx, favorite)
}

func (s *FavoriteService) Remove(ctx context.Context, userID int, recipeID string) error {
	return s.repo.Remove(ctx, userID, recipeID)
}

func (s *FavoriteService) List(ctx context.Context, userID int, sort string) ([]types.Favorite, error) {
	return s.repo.ListByUser(ctx, userID, sort == sortAscending)
}
