package playlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/handika51/openmusic-api/internal/apperr"
	"github.com/handika51/openmusic-api/internal/db"
)

// Store owns playlist and membership-entry state. It performs no
// authorization; Service checks access before calling it.
type Store interface {
	AddPlaylist(ctx context.Context, name, ownerID string) (string, error)
	AddSongToPlaylist(ctx context.Context, entry SongEntry) (int64, error)
	GetPlaylists(ctx context.Context, userID string) ([]PlaylistSummary, error)
	GetPlaylistSongs(ctx context.Context, playlistID string) ([]SongSummary, error)
	DeletePlaylist(ctx context.Context, playlistID string) (int64, error)
	DeletePlaylistSong(ctx context.Context, playlistID, songID string) (int64, error)
	GetPlaylistOwner(ctx context.Context, playlistID string) (string, error)
}

type PostgresStore struct {
	db db.DB
}

func NewPostgresStore(conn db.DB) *PostgresStore {
	return &PostgresStore{db: conn}
}

func (s *PostgresStore) AddPlaylist(ctx context.Context, name, ownerID string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO playlists (id, name, owner)
		VALUES ($1, $2, $3)
		RETURNING id
	`, db.NewID("playlist"), name, ownerID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("insert playlist: %w", err)
	}
	return id, nil
}

// AddSongToPlaylist inserts entry, assigning it an id when it has none, and
// reports how many rows were written.
func (s *PostgresStore) AddSongToPlaylist(ctx context.Context, entry SongEntry) (int64, error) {
	if entry.ID == "" {
		entry.ID = db.NewID("playlist-song")
	}
	tag, err := s.db.Exec(ctx, `
		INSERT INTO playlist_songs (id, playlist_id, song_id)
		VALUES ($1, $2, $3)
	`, entry.ID, entry.PlaylistID, entry.SongID)
	if err != nil {
		return 0, fmt.Errorf("insert playlist song: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetPlaylists lists every playlist userID owns or collaborates on, once
// each, oldest first.
func (s *PostgresStore) GetPlaylists(ctx context.Context, userID string) ([]PlaylistSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.name, COALESCE(u.username, p.owner)
		FROM playlists p
		LEFT JOIN users u ON u.id = p.owner
		WHERE p.owner = $1
		   OR EXISTS (
		       SELECT 1 FROM collaborations c
		       WHERE c.playlist_id = p.id AND c.user_id = $1
		   )
		ORDER BY p.created_at ASC, p.id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := []PlaylistSummary{}
	for rows.Next() {
		var pl PlaylistSummary
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.Username); err != nil {
			return nil, fmt.Errorf("list playlists scan: %w", err)
		}
		playlists = append(playlists, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list playlists rows: %w", err)
	}
	return playlists, nil
}

// GetPlaylistSongs returns the playlist's entries in insertion order. A
// playlist without songs yields an empty slice.
func (s *PostgresStore) GetPlaylistSongs(ctx context.Context, playlistID string) ([]SongSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT s.id, s.title, s.performer
		FROM playlist_songs ps
		INNER JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.created_at ASC, ps.id ASC
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	songs := []SongSummary{}
	for rows.Next() {
		var sg SongSummary
		if err := rows.Scan(&sg.ID, &sg.Title, &sg.Performer); err != nil {
			return nil, fmt.Errorf("list playlist songs scan: %w", err)
		}
		songs = append(songs, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list playlist songs rows: %w", err)
	}
	return songs, nil
}

// DeletePlaylist removes the playlist; its entries and collaborations go
// with it through ON DELETE CASCADE.
func (s *PostgresStore) DeletePlaylist(ctx context.Context, playlistID string) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, playlistID)
	if err != nil {
		return 0, fmt.Errorf("delete playlist: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeletePlaylistSong removes every entry for the (playlist, song) pair.
func (s *PostgresStore) DeletePlaylistSong(ctx context.Context, playlistID, songID string) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID)
	if err != nil {
		return 0, fmt.Errorf("delete playlist song: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) GetPlaylistOwner(ctx context.Context, playlistID string) (string, error) {
	var owner string
	err := s.db.QueryRow(ctx, `SELECT owner FROM playlists WHERE id = $1`, playlistID).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.NotFound("playlist not found")
	}
	if err != nil {
		return "", fmt.Errorf("fetch playlist owner: %w", err)
	}
	return owner, nil
}
