package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/recipebook/apiserver/internal/services"
	"github.com/recipebook/apiserver/internal/store"
	"github.com/recipebook/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler provides registration, login, and account management endpoints
// with cookie-based session authentication.
type AuthHandler struct {
	userService  *services.UserService
	secret       []byte
	cookieSecure bool
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, jwtSecret string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		secret:       []byte(jwtSecret),
		cookieSecure: cookieSecure,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Username string  `json:"username"`
	Name     string  `json:"name"`
	LastName *string `json:"lastName"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// UserResponse is the account payload returned by login and profile updates.
// The id and password hash are never exposed.
type UserResponse struct {
	Name     string  `json:"name"`
	Username string  `json:"username"`
	LastName *string `json:"lastName"`
}

func userPayload(user types.User) map[string]UserResponse {
	return map[string]UserResponse{
		"user": {
			Name:     user.Name,
			Username: user.Username,
			LastName: user.LastName,
		},
	}
}

// Register creates a new account. The username must be unused.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnauthorized, "Missing username or password")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusUnauthorized, "Missing username or password")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	_, err = h.userService.Create(r.Context(), types.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hashed),
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusUnauthorized, "username already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Msg: "registration success"})
}

// Login verifies credentials, sets the session cookie, and returns the user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	user, err := h.userService.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid username")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Incorrect password")
		return
	}

	token, err := issueToken(user.ID, h.secret, tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	setSessionCookie(w, token, h.cookieSecure)
	writeJSON(w, http.StatusOK, userPayload(user))
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.cookieSecure)
	writeJSON(w, http.StatusOK, MessageResponse{Msg: "logout successful"})
}

// UpdateUser overwrites the caller's profile fields.
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unable to authenticate user")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)
	if req.Username == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, req.Username, req.Name, req.LastName)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusBadRequest, "username already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, userPayload(user))
}

// ResetPassword overwrites the caller's password hash.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unable to authenticate user")
		return
	}

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "please enter the new password")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "please enter the new password")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reset password")
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), userID, string(hashed)); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reset password")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Msg: "password reset successful"})
}

// DeleteUser removes the caller's account along with their favorites and
// shopping list entries.
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unable to authenticate user")
		return
	}

	if err := h.userService.Delete(r.Context(), userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Msg: "account deleted"})
}
