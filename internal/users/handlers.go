package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/handika51/openmusic-api/internal/apperr"
	"github.com/handika51/openmusic-api/internal/httputil"
)

// Registrar creates user accounts.
type Registrar interface {
	AddUser(ctx context.Context, u User) (string, error)
}

type Handler struct {
	users Registrar
}

func NewHandler(users Registrar) *Handler {
	return &Handler{users: users}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/users", h.handleAddUser)
}

func (h *Handler) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Fullname string `json:"fullname"`
	}
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	body.Username = strings.TrimSpace(body.Username)
	body.Fullname = strings.TrimSpace(body.Fullname)
	if body.Username == "" || body.Password == "" || body.Fullname == "" {
		httputil.WriteError(w, r, apperr.Validation("username, password and fullname are required"))
		return
	}
	if len(body.Username) > 50 {
		httputil.WriteError(w, r, apperr.Validation("username is too long"))
		return
	}
	if len(body.Password) > MaxPasswordLength {
		httputil.WriteError(w, r, apperr.Validation("password is too long"))
		return
	}

	id, err := h.users.AddUser(r.Context(), User{
		Username: body.Username,
		Password: body.Password,
		Fullname: body.Fullname,
	})
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "User added", map[string]any{"userId": id})
}
