package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/handika51/openmusic-api/internal/apperr"
	"github.com/handika51/openmusic-api/internal/httputil"
)

// CredentialVerifier resolves a username/password pair to a user id.
type CredentialVerifier interface {
	VerifyCredential(ctx context.Context, username, password string) (string, error)
}

type Handler struct {
	tokens *TokenManager
	store  TokenStore
	users  CredentialVerifier
}

func NewHandler(tokens *TokenManager, store TokenStore, users CredentialVerifier) *Handler {
	return &Handler{tokens: tokens, store: store, users: users}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/authentications", h.handleLogin)
	r.Put("/authentications", h.handleRefresh)
	r.Delete("/authentications", h.handleLogout)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	body.Username = strings.TrimSpace(body.Username)
	if body.Username == "" || body.Password == "" {
		httputil.WriteError(w, r, apperr.Validation("username and password are required"))
		return
	}

	userID, err := h.users.VerifyCredential(ctx, body.Username, body.Password)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	accessToken, err := h.tokens.GenerateAccessToken(userID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(userID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if err := h.store.AddRefreshToken(ctx, refreshToken); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "Authentication added", map[string]any{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := h.decodeRefreshToken(w, r)
	if !ok {
		return
	}

	if err := h.store.VerifyRefreshToken(r.Context(), refreshToken); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	userID, err := h.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	accessToken, err := h.tokens.GenerateAccessToken(userID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Access token refreshed", map[string]any{
		"accessToken": accessToken,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := h.decodeRefreshToken(w, r)
	if !ok {
		return
	}

	if err := h.store.VerifyRefreshToken(r.Context(), refreshToken); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if err := h.store.DeleteRefreshToken(r.Context(), refreshToken); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Refresh token deleted", nil)
}

func (h *Handler) decodeRefreshToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.WriteError(w, r, err)
		return "", false
	}
	if strings.TrimSpace(body.RefreshToken) == "" {
		httputil.WriteError(w, r, apperr.Validation("refreshToken is required"))
		return "", false
	}
	return body.RefreshToken, true
}
