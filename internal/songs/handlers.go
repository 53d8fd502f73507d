package songs

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/handika51/openmusic-api/internal/apperr"
	"github.com/handika51/openmusic-api/internal/httputil"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/songs", h.handleAddSong)
	r.Get("/songs", h.handleGetSongs)
	r.Get("/songs/{id}", h.handleGetSong)
	r.Put("/songs/{id}", h.handleEditSong)
	r.Delete("/songs/{id}", h.handleDeleteSong)
}

type songPayload struct {
	Title     string `json:"title"`
	Year      *int   `json:"year"`
	Performer string `json:"performer"`
	Genre     string `json:"genre"`
	Duration  *int   `json:"duration"`
}

func (p songPayload) validate() (Song, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Performer = strings.TrimSpace(p.Performer)
	if p.Title == "" {
		return Song{}, apperr.Validation("title is required")
	}
	if p.Performer == "" {
		return Song{}, apperr.Validation("performer is required")
	}
	if p.Year == nil {
		return Song{}, apperr.Validation("year is required")
	}
	if *p.Year < minYear || *p.Year > maxYear {
		return Song{}, apperr.Validation("year must be between 1900 and 2021")
	}

	s := Song{
		Title:     p.Title,
		Year:      *p.Year,
		Performer: p.Performer,
		Genre:     strings.TrimSpace(p.Genre),
	}
	if p.Duration != nil {
		s.Duration = *p.Duration
	}
	return s, nil
}

func decodeSong(r *http.Request) (Song, error) {
	var body songPayload
	if err := httputil.DecodeJSON(r, &body); err != nil {
		return Song{}, err
	}
	return body.validate()
}

func (h *Handler) handleAddSong(w http.ResponseWriter, r *http.Request) {
	song, err := decodeSong(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	id, err := h.store.AddSong(r.Context(), song)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "Song added", map[string]any{"songId": id})
}

func (h *Handler) handleGetSongs(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.GetSongs(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", map[string]any{"songs": list})
}

func (h *Handler) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, err := h.store.GetSongByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", map[string]any{"song": song})
}

func (h *Handler) handleEditSong(w http.ResponseWriter, r *http.Request) {
	song, err := decodeSong(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if err := h.store.EditSongByID(r.Context(), chi.URLParam(r, "id"), song); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "Song updated", nil)
}

func (h *Handler) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSongByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "Song deleted", nil)
}
