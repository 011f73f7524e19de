package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recipebook/apiserver/internal/services"
	"github.com/recipebook/apiserver/types"
)

// FavoriteHandler provides endpoints over a user's saved recipes.
type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

type AddFavoriteRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// FavoriteListResponse is one page of favorites plus the full id list, so the
// client can mark search results as favorited without another round trip.
type FavoriteListResponse struct {
	FavoriteList []types.Favorite `json:"favoriteList"`
	IDList       []string         `json:"idList"`
	TotalRecipes int              `json:"totalRecipes"`
	NumOfPages   int              `json:"numOfPages"`
}

// AddFavorite saves a recipe. Saving an already saved recipe is a no-op.
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unable to authenticate user")
		return
	}

	var req AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "missing recipe information")
		return
	}
	if req.ID == "" || req.Name == "" || req.Category == "" || req.Image == "" {
		writeError(w, http.StatusBadRequest, "missing recipe information")
		return
	}

	favorite := types.Favorite{
		UserID:   userID,
		RecipeID: req.ID,
		Name:     req.Name,
		Image:    req.Image,
		Category: req.Category,
	}
	if err := h.favoriteService.Add(r.Context(), favorite); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add favorite")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Msg: "recipe added to favorites"})
}

// RemoveFavorite deletes a saved recipe. A recipe that was never saved is
// ignored.
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unable to authenticate user")
		return
	}

	recipeID := chi.URLParam(r, "recipeID")
	if recipeID == "" {
		writeError(w, http.StatusBadRequest, "missing recipe information")
		return
	}

	if err := h.favoriteService.Remove(r.Context(), userID, recipeID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove favorite")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Msg: "recipe removed from favorites"})
}

// ListFavorites returns one page of the user's favorites, sorted by recipe
// name. sort=a-z sorts ascending; anything else sorts descending.
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unable to authenticate user")
		return
	}

	sort := r.URL.Query().Get("sort")
	page := parsePage(r)

	favorites, err := h.favoriteService.List(r.Context(), userID, sort)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}

	idList := make([]string, 0, len(favorites))
	for _, favorite := range favorites {
		idList = append(idList, favorite.RecipeID)
	}

	start, end, numPages := paginate(len(favorites), page)
	writeJSON(w, http.StatusOK, FavoriteListResponse{
		FavoriteList: favorites[start:end],
		IDList:       idList,
		TotalRecipes: len(favorites),
		NumOfPages:   numPages,
	})
}
