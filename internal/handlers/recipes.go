package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recipebook/apiserver/types"
)

// RecipeCatalog defines the upstream operations the recipe endpoints use.
type RecipeCatalog interface {
	Search(ctx context.Context, query string) ([]types.Recipe, error)
	Lookup(ctx context.Context, recipeID string) (types.Recipe, bool, error)
}

// RecipeHandler proxies recipe search and lookup to the upstream catalog.
type RecipeHandler struct {
	catalog RecipeCatalog
}

func NewRecipeHandler(catalog RecipeCatalog) *RecipeHandler {
	return &RecipeHandler{catalog: catalog}
}

// RecipeListResponse is the paginated search response payload.
type RecipeListResponse struct {
	AllFetchedRecipes []types.Recipe `json:"allFetchedRecipes"`
	TotalRecipes      int            `json:"totalRecipes"`
	NumOfPages        int            `json:"numOfPages"`
}

// SingleRecipeResponse wraps a lookup result with its validity flag.
type SingleRecipeResponse struct {
	Msg          string        `json:"msg"`
	SingleRecipe *types.Recipe `json:"single_recipe,omitempty"`
}

// ListRecipes searches the catalog by name and returns one page of results.
func (h *RecipeHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page := parsePage(r)

	recipes, err := h.catalog.Search(r.Context(), search)
	if err != nil {
		writeError(w, http.StatusBadGateway, "recipe catalog unavailable")
		return
	}

	start, end, numPages := paginate(len(recipes), page)
	writeJSON(w, http.StatusOK, RecipeListResponse{
		AllFetchedRecipes: recipes[start:end],
		TotalRecipes:      len(recipes),
		NumOfPages:        numPages,
	})
}

// GetRecipe looks up a single recipe by catalog id.
func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID := chi.URLParam(r, "recipeID")

	recipe, ok, err := h.catalog.Lookup(r.Context(), recipeID)
	if err != nil {
		writeError(w, http.StatusBadGateway, "recipe catalog unavailable")
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, SingleRecipeResponse{Msg: "Invalid"})
		return
	}

	writeJSON(w, http.StatusOK, SingleRecipeResponse{Msg: "Valid", SingleRecipe: &recipe})
}
