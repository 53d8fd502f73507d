package songs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/handika51/openmusic-api/internal/apperr"
	"github.com/handika51/openmusic-api/internal/db"
)

type Store interface {
	AddSong(ctx context.Context, s Song) (string, error)
	GetSongs(ctx context.Context) ([]SongSummary, error)
	GetSongByID(ctx context.Context, id string) (*Song, error)
	EditSongByID(ctx context.Context, id string, s Song) error
	DeleteSongByID(ctx context.Context, id string) error
	SongExists(ctx context.Context, id string) (bool, error)
}

type PostgresStore struct {
	db db.DB
}

func NewPostgresStore(conn db.DB) *PostgresStore {
	return &PostgresStore{db: conn}
}

func (s *PostgresStore) AddSong(ctx context.Context, song Song) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO songs (id, title, year, performer, genre, duration)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, db.NewID("song"), song.Title, song.Year, song.Performer, song.Genre, song.Duration).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.Invariant("song could not be added")
	}
	if err != nil {
		return "", fmt.Errorf("insert song: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) GetSongs(ctx context.Context) ([]SongSummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, performer
		FROM songs
		ORDER BY inserted_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	out := []SongSummary{}
	for rows.Next() {
		var sg SongSummary
		if err := rows.Scan(&sg.ID, &sg.Title, &sg.Performer); err != nil {
			return nil, fmt.Errorf("list songs scan: %w", err)
		}
		out = append(out, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list songs rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) GetSongByID(ctx context.Context, id string) (*Song, error) {
	var sg Song
	err := s.db.QueryRow(ctx, `
		SELECT id, title, year, performer, genre, duration, inserted_at, updated_at
		FROM songs
		WHERE id = $1
	`, id).Scan(&sg.ID, &sg.Title, &sg.Year, &sg.Performer, &sg.Genre, &sg.Duration, &sg.InsertedAt, &sg.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("song not found")
	}
	if err != nil {
		return nil, fmt.Errorf("fetch song: %w", err)
	}
	return &sg, nil
}

func (s *PostgresStore) EditSongByID(ctx context.Context, id string, song Song) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE songs
		SET title = $2, year = $3, performer = $4, genre = $5, duration = $6, updated_at = now()
		WHERE id = $1
	`, id, song.Title, song.Year, song.Performer, song.Genre, song.Duration)
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("failed to update song, id not found")
	}
	return nil
}

func (s *PostgresStore) DeleteSongByID(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("failed to delete song, id not found")
	}
	return nil
}

func (s *PostgresStore) SongExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM songs WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check song: %w", err)
	}
	return exists, nil
}
