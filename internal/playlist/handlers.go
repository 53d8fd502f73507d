package playlist

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/handika51/openmusic-api/internal/apperr"
	"github.com/handika51/openmusic-api/internal/auth"
	"github.com/handika51/openmusic-api/internal/httputil"
)

const maxNameLength = 200

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the playlist endpoints. They expect auth.Authenticate to
// have run.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/playlists", h.handleAddPlaylist)
	r.Get("/playlists", h.handleGetPlaylists)
	r.Delete("/playlists/{id}", h.handleDeletePlaylist)

	r.Post("/playlists/{id}/songs", h.handleAddPlaylistSong)
	r.Get("/playlists/{id}/songs", h.handleGetPlaylistSongs)
	r.Delete("/playlists/{id}/songs", h.handleDeletePlaylistSong)
}

type playlistPayload struct {
	Name string `json:"name"`
}

type playlistSongPayload struct {
	SongID string `json:"songId"`
}

func (h *Handler) handleAddPlaylist(w http.ResponseWriter, r *http.Request) {
	var body playlistPayload
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		httputil.WriteError(w, r, apperr.Validation("name is required"))
		return
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		httputil.WriteError(w, r, apperr.Validation("name is too long"))
		return
	}

	id, err := h.service.AddPlaylist(r.Context(), name, auth.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "Playlist added", map[string]any{"playlistId": id})
}

func (h *Handler) handleGetPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.service.ListPlaylistsFor(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", map[string]any{"playlists": playlists})
}

func (h *Handler) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "id")
	if err := h.service.DeletePlaylist(r.Context(), playlistID, auth.UserIDFromContext(r.Context())); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "Playlist deleted", nil)
}

func decodeSongID(r *http.Request) (string, error) {
	var body playlistSongPayload
	if err := httputil.DecodeJSON(r, &body); err != nil {
		return "", err
	}
	songID := strings.TrimSpace(body.SongID)
	if songID == "" {
		return "", apperr.Validation("songId is required")
	}
	return songID, nil
}

func (h *Handler) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	songID, err := decodeSongID(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	playlistID := chi.URLParam(r, "id")
	if err := h.service.AddSongToPlaylist(r.Context(), playlistID, songID, auth.UserIDFromContext(r.Context())); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "Song added to playlist", nil)
}

func (h *Handler) handleGetPlaylistSongs(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "id")
	songs, err := h.service.ListSongsIn(r.Context(), playlistID, auth.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", map[string]any{
		"playlistId": playlistID,
		"songs":      songs,
	})
}

func (h *Handler) handleDeletePlaylistSong(w http.ResponseWriter, r *http.Request) {
	songID, err := decodeSongID(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	playlistID := chi.URLParam(r, "id")
	if err := h.service.RemoveSongFromPlaylist(r.Context(), playlistID, songID, auth.UserIDFromContext(r.Context())); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "Song removed from playlist", nil)
}
