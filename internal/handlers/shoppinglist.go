package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/recipebook/apiserver/internal/services"
	"github.com/recipebook/apiserver/types"
)

// ShoppingListHandler provides endpoints over a user's grocery list.
type ShoppingListHandler struct {
	listService *services.ShoppingListService
}

func NewShoppingListHandler(listService *services.ShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{listService: listService}
}

type AddListRequest struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	IngredientList []string `json:"ingredientList"`
}

// ShoppingListResponse holds every entry plus the distinct recipe names
// present on the list.
type ShoppingListResponse struct {
	ShoppingList []types.ShoppingListEntry `json:"shoppingList"`
	Names        []string                  `json:"names"`
}

// AddToList inserts one entry per ingredient for the given recipe. Repeating
// an ingredient for the same recipe is a no-op.
func (h *ShoppingListHandler) AddToList(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unable to authenticate user")
		return
	}

	var req AddListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "missing recipe information")
		return
	}
	if req.ID == "" || req.Name == "" || len(req.IngredientList) == 0 {
		writeError(w, http.StatusBadRequest, "missing recipe information")
		return
	}

	if err := h.listService.Add(r.Context(), userID, req.ID, req.Name, req.IngredientList); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add to list")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Msg: "ingredients added to grocery list"})
}

// FetchList returns the user's entire grocery list.
func (h *ShoppingListHandler) FetchList(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unable to authenticate user")
		return
	}

	entries, err := h.listService.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch list")
		return
	}

	seen := make(map[string]struct{}, len(entries))
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.RecipeName]; ok {
			continue
		}
		seen[entry.RecipeName] = struct{}{}
		names = append(names, entry.RecipeName)
	}

	writeJSON(w, http.StatusOK, ShoppingListResponse{ShoppingList: entries, Names: names})
}

// ClearList deletes every entry on the user's list.
func (h *ShoppingListHandler) ClearList(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unable to authenticate user")
		return
	}

	if err := h.listService.Clear(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear list")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Msg: "list cleared"})
}

// RemoveItem deletes the single entry named by the id and ingredient query
// parameters. A missing entry is ignored.
func (h *ShoppingListHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unable to authenticate user")
		return
	}

	recipeID := r.URL.Query().Get("id")
	ingredient := r.URL.Query().Get("ingredient")

	if err := h.listService.RemoveItem(r.Context(), userID, recipeID, ingredient); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Msg: "item removed"})
}
