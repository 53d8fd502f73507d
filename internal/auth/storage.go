package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/handika51/openmusic-api/internal/apperr"
	"github.com/handika51/openmusic-api/internal/db"
)

// TokenStore remembers which refresh tokens are still logged in.
type TokenStore interface {
	AddRefreshToken(ctx context.Context, token string) error
	VerifyRefreshToken(ctx context.Context, token string) error
	DeleteRefreshToken(ctx context.Context, token string) error
}

type PostgresTokenStore struct {
	db db.DB
}

func NewPostgresTokenStore(conn db.DB) *PostgresTokenStore {
	return &PostgresTokenStore{db: conn}
}

func (s *PostgresTokenStore) AddRefreshToken(ctx context.Context, token string) error {
	if _, err := s.db.Exec(ctx, `INSERT INTO authentications (token) VALUES ($1)`, token); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (s *PostgresTokenStore) VerifyRefreshToken(ctx context.Context, token string) error {
	var stored string
	err := s.db.QueryRow(ctx, `SELECT token FROM authentications WHERE token = $1`, token).Scan(&stored)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.Validation("invalid refresh token")
	}
	if err != nil {
		return fmt.Errorf("fetch refresh token: %w", err)
	}
	return nil
}

func (s *PostgresTokenStore) DeleteRefreshToken(ctx context.Context, token string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM authentications WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
