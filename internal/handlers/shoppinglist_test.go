package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/recipebook/apiserver/internal/services"
	"github.com/recipebook/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeShoppingListRepo is an in-memory services.ShoppingListRepository keyed
// by the (user, recipe, ingredient) triple.
type listKey struct {
	userID     int
	recipeID   string
	ingredient string
}

type fakeShoppingListRepo struct {
	rows map[listKey]types.ShoppingListEntry
}

func newFakeShoppingListRepo() *fakeShoppingListRepo {
	return &fakeShoppingListRepo{rows: make(map[listKey]types.ShoppingListEntry)}
}

func (f *fakeShoppingListRepo) Add(_ context.Context, userID int, recipeID, recipeName string, ingredients []string) error {
	for _, ingredient := range ingredients {
		key := listKey{userID, recipeID, ingredient}
		if _, ok := f.rows[key]; ok {
			continue
		}
		f.rows[key] = types.ShoppingListEntry{
			UserID:     userID,
			RecipeID:   recipeID,
			RecipeName: recipeName,
			Ingredient: ingredient,
		}
	}
	return nil
}

func (f *fakeShoppingListRepo) ListByUser(_ context.Context, userID int) ([]types.ShoppingListEntry, error) {
	entries := make([]types.ShoppingListEntry, 0, len(f.rows))
	for _, entry := range f.rows {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (f *fakeShoppingListRepo) Clear(_ context.Context, userID int) error {
	for key := range f.rows {
		if key.userID == userID {
			delete(f.rows, key)
		}
	}
	return nil
}

func (f *fakeShoppingListRepo) RemoveItem(_ context.Context, userID int, recipeID, ingredient string) error {
	delete(f.rows, listKey{userID, recipeID, ingredient})
	return nil
}

func shoppingListRouter(repo *fakeShoppingListRepo) *chi.Mux {
	handler := NewShoppingListHandler(services.NewShoppingListService(repo))
	router := chi.NewRouter()
	router.Post("/add_list", handler.AddToList)
	router.Get("/fetch_list", handler.FetchList)
	router.Delete("/delete_list", handler.ClearList)
	router.Delete("/delete_item", handler.RemoveItem)
	return router
}

func addToList(t *testing.T, router *chi.Mux, userID int, id, name string, ingredients []string) {
	t.Helper()
	req := authedRequest(t, http.MethodPost, "/add_list", AddListRequest{
		ID:             id,
		Name:           name,
		IngredientList: ingredients,
	}, userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func fetchList(t *testing.T, router *chi.Mux, userID int) ShoppingListResponse {
	t.Helper()
	req := authedRequest(t, http.MethodGet, "/fetch_list", nil, userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ShoppingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAddToListInsertsOneRowPerIngredient(t *testing.T) {
	repo := newFakeShoppingListRepo()
	router := shoppingListRouter(repo)

	addToList(t, router, 1, "52772", "Teriyaki", []string{"1 tsp Salt", "300g Chicken"})
	assert.Len(t, repo.rows, 2)
}

func TestAddToListIdempotentPerTriple(t *testing.T) {
	repo := newFakeShoppingListRepo()
	router := shoppingListRouter(repo)

	addToList(t, router, 1, "52772", "Teriyaki", []string{"1 tsp Salt"})
	addToList(t, router, 1, "52772", "Teriyaki", []string{"1 tsp Salt"})
	assert.Len(t, repo.rows, 1)
}

func TestAddToListMissingFields(t *testing.T) {
	router := shoppingListRouter(newFakeShoppingListRepo())

	req := authedRequest(t, http.MethodPost, "/add_list", AddListRequest{
		ID:   "52772",
		Name: "Teriyaki",
	}, 1)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"msg": "missing recipe information"}`, rec.Body.String())
}

func TestFetchListDeduplicatesNames(t *testing.T) {
	router := shoppingListRouter(newFakeShoppingListRepo())
	addToList(t, router, 1, "1", "Teriyaki", []string{"Salt", "Chicken"})
	addToList(t, router, 1, "2", "Crumble", []string{"Apples"})

	resp := fetchList(t, router, 1)
	assert.Len(t, resp.ShoppingList, 3)
	assert.ElementsMatch(t, []string{"Teriyaki", "Crumble"}, resp.Names)
}

func TestFetchListScopedToUser(t *testing.T) {
	router := shoppingListRouter(newFakeShoppingListRepo())
	addToList(t, router, 1, "1", "Mine", []string{"Salt"})
	addToList(t, router, 2, "2", "Theirs", []string{"Pepper"})

	resp := fetchList(t, router, 1)
	require.Len(t, resp.ShoppingList, 1)
	assert.Equal(t, "Mine", resp.ShoppingList[0].RecipeName)
}

func TestClearListDeletesEverything(t *testing.T) {
	repo := newFakeShoppingListRepo()
	router := shoppingListRouter(repo)
	addToList(t, router, 1, "1", "Teriyaki", []string{"Salt", "Chicken"})

	req := authedRequest(t, http.MethodDelete, "/delete_list", nil, 1)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.rows)
}

func TestRemoveItemDeletesSingleRow(t *testing.T) {
	repo := newFakeShoppingListRepo()
	router := shoppingListRouter(repo)
	addToList(t, router, 1, "1", "Teriyaki", []string{"Salt", "Chicken"})

	req := authedRequest(t, http.MethodDelete, "/delete_item?id=1&ingredient=Salt", nil, 1)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.rows, 1)
	for _, entry := range repo.rows {
		assert.Equal(t, "Chicken", entry.Ingredient)
	}
}

func TestRemoveItemMissingRowIsNotAnError(t *testing.T) {
	router := shoppingListRouter(newFakeShoppingListRepo())

	req := authedRequest(t, http.MethodDelete, "/delete_item?id=9&ingredient=Ghost", nil, 1)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg": "item removed"}`, rec.Body.String())
}
