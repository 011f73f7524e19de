package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// recipesPerPage is the fixed page size shared by recipe search and the
// favorites listing. Pages are 1-based.
const recipesPerPage = 6

type contextKey string

const contextSubjectKey contextKey = "sub"

func contextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, contextSubjectKey, userID)
}

func userIDFromContext(ctx context.Context) (int, error) {
	subject, ok := ctx.Value(contextSubjectKey).(int)
	if !ok || subject < 1 {
		return 0, errors.New("missing subject")
	}
	return subject, nil
}

// MessageResponse is the common `{"msg": ...}` payload.
type MessageResponse struct {
	Msg string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Msg: message})
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parsePage reads the 1-based page query parameter, defaulting to the first
// page when absent or unparsable.
func parsePage(r *http.Request) int {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// paginate returns the half-open [start, end) bounds of the requested page
// and the total page count.
func paginate(total, page int) (start, end, numPages int) {
	numPages = (total + recipesPerPage - 1) / recipesPerPage
	start = (page - 1) * recipesPerPage
	if start > total {
		start = total
	}
	end = start + recipesPerPage
	if end > total {
		end = total
	}
	return start, end, numPages
}
