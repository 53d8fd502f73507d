package collab

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/handika51/openmusic-api/internal/apperr"
	"github.com/handika51/openmusic-api/internal/auth"
	"github.com/handika51/openmusic-api/internal/events"
	"github.com/handika51/openmusic-api/internal/httputil"
)

// OwnershipVerifier fails unless userID owns the playlist.
type OwnershipVerifier interface {
	VerifyOwnership(ctx context.Context, playlistID, userID string) error
}

// UserChecker answers whether a user account exists.
type UserChecker interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any)
}

type Handler struct {
	registry  Registry
	playlists OwnershipVerifier
	users     UserChecker
	events    EventPublisher
}

func NewHandler(registry Registry, playlists OwnershipVerifier, users UserChecker, pub EventPublisher) *Handler {
	return &Handler{registry: registry, playlists: playlists, users: users, events: pub}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/collaborations", h.handleAddCollaboration)
	r.Delete("/collaborations", h.handleDeleteCollaboration)
}

type collaborationPayload struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

// decodeAndAuthorize reads the payload and checks that the caller owns the
// playlist. It writes the response itself on failure.
func (h *Handler) decodeAndAuthorize(w http.ResponseWriter, r *http.Request) (collaborationPayload, bool) {
	var body collaborationPayload
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.WriteError(w, r, err)
		return body, false
	}
	body.PlaylistID = strings.TrimSpace(body.PlaylistID)
	body.UserID = strings.TrimSpace(body.UserID)
	if body.PlaylistID == "" || body.UserID == "" {
		httputil.WriteError(w, r, apperr.Validation("playlistId and userId are required"))
		return body, false
	}

	if err := h.playlists.VerifyOwnership(r.Context(), body.PlaylistID, auth.UserIDFromContext(r.Context())); err != nil {
		httputil.WriteError(w, r, err)
		return body, false
	}
	return body, true
}

func (h *Handler) handleAddCollaboration(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeAndAuthorize(w, r)
	if !ok {
		return
	}

	exists, err := h.users.UserExists(r.Context(), body.UserID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if !exists {
		httputil.WriteError(w, r, apperr.NotFound("user not found"))
		return
	}

	id, err := h.registry.AddCollaboration(r.Context(), body.PlaylistID, body.UserID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if id == "" {
		httputil.WriteError(w, r, apperr.Invariant("collaboration could not be added"))
		return
	}

	h.publish(r.Context(), events.CollaborationAdded, body)
	httputil.WriteSuccess(w, http.StatusCreated, "Collaboration added", map[string]any{"collaborationId": id})
}

func (h *Handler) handleDeleteCollaboration(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeAndAuthorize(w, r)
	if !ok {
		return
	}

	n, err := h.registry.DeleteCollaboration(r.Context(), body.PlaylistID, body.UserID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if n == 0 {
		httputil.WriteError(w, r, apperr.Invariant("collaboration could not be deleted"))
		return
	}

	h.publish(r.Context(), events.CollaborationRemoved, body)
	httputil.WriteSuccess(w, http.StatusOK, "Collaboration deleted", nil)
}

func (h *Handler) publish(ctx context.Context, eventType string, body collaborationPayload) {
	if h.events == nil {
		return
	}
	h.events.Publish(context.WithoutCancel(ctx), eventType, map[string]any{
		"playlistId": body.PlaylistID,
		"userId":     body.UserID,
	})
}
