// Package collab records which users may work on someone else's playlist.
package collab

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/handika51/openmusic-api/internal/db"
)

type Registry interface {
	IsCollaborator(ctx context.Context, playlistID, userID string) (bool, error)
	AddCollaboration(ctx context.Context, playlistID, userID string) (string, error)
	DeleteCollaboration(ctx context.Context, playlistID, userID string) (int64, error)
}

type PostgresRegistry struct {
	db db.DB
}

func NewPostgresRegistry(conn db.DB) *PostgresRegistry {
	return &PostgresRegistry{db: conn}
}

func (s *PostgresRegistry) IsCollaborator(ctx context.Context, playlistID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM collaborations WHERE playlist_id = $1 AND user_id = $2)
	`, playlistID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check collaboration: %w", err)
	}
	return exists, nil
}

// AddCollaboration returns the id of the collaboration, reusing the existing
// one when the user is already a collaborator.
func (s *PostgresRegistry) AddCollaboration(ctx context.Context, playlistID, userID string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO collaborations (id, playlist_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (playlist_id, user_id) DO NOTHING
		RETURNING id
	`, db.NewID("collab"), playlistID, userID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("insert collaboration: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT id FROM collaborations WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("fetch collaboration: %w", err)
	}
	return id, nil
}

func (s *PostgresRegistry) DeleteCollaboration(ctx context.Context, playlistID, userID string) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete collaboration: %w", err)
	}
	return tag.RowsAffected(), nil
}
