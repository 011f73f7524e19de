package services

import (
	"context"

	"github.com/recipebook/apiserver/types"
)

// ShoppingListRepository defines persistence operations for grocery entries.
type ShoppingListRepository interface {
	Add(ctx context.Context, userID int, recipeID, recipeName string, ingredients []string) error
	ListByUser(ctx context.Context, userID int) ([]types.ShoppingListEntry, error)
	Clear(ctx context.Context, userID int) error
	RemoveItem(ctx context.Context, userID int, recipeID, ingredient string) error
}

// ShoppingListService encapsulates grocery list use-cases.
type ShoppingListService struct {
	repo ShoppingListRepository
}

func NewShoppingListService(repo ShoppingListRepository) *ShoppingListService {
	return &ShoppingListService{repo: repo}
}

func (s *ShoppingListService) Add(ctx context.Context, userID int, recipeID, recipeName string, ingredients []string) error {
	return s.repo.Add(ctx, userID, recipeID, recipeName, ingredients)
}

func (s *ShoppingListService) List(ctx context.Context, userID int) ([]types.ShoppingListEntry, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ShoppingListService) Clear(ctx context.Context, userID int) error {
	return s.repo.Clear(ctx, userID)
}

func (s *ShoppingListService) RemoveItem(ctx context.Context, userID int, recipeID, ingredient string) error {
	return s.repo.RemoveItem(ctx, userID, recipeID, ingredient)
}
