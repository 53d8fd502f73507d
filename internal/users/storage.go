// Package users registers accounts and checks their credentials.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/handika51/openmusic-api/internal/apperr"
	"github.com/handika51/openmusic-api/internal/db"
)

// MaxPasswordLength is the longest password bcrypt accepts, in bytes.
const MaxPasswordLength = 72

const uniqueViolation = "23505"

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Fullname string `json:"fullname"`
}

type PostgresStore struct {
	db   db.DB
	cost int
}

func NewPostgresStore(conn db.DB) *PostgresStore {
	return &PostgresStore{db: conn, cost: bcrypt.DefaultCost}
}

// AddUser stores u with a hashed password and returns the new id.
func (s *PostgresStore) AddUser(ctx context.Context, u User) (string, error) {
	var existing string
	err := s.db.QueryRow(ctx, `SELECT username FROM users WHERE username = $1`, u.Username).Scan(&existing)
	if err == nil {
		return "", apperr.Invariant("username is already taken")
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.Validation("password is too long")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	var id string
	err = s.db.QueryRow(ctx, `
		INSERT INTO users (id, username, password, fullname)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, db.NewID("user"), u.Username, string(hash), u.Fullname).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && id == "") {
		return "", apperr.Invariant("user could not be added")
	}
	// A concurrent registration can win between the lookup and the insert.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return "", apperr.Invariant("username is already taken")
	}
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// VerifyCredential returns the id of the user matching username and
// password.
func (s *PostgresStore) VerifyCredential(ctx context.Context, username, password string) (string, error) {
	var id, hash string
	err := s.db.QueryRow(ctx, `SELECT id, password FROM users WHERE username = $1`, username).Scan(&id, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.Authentication("invalid credentials")
	}
	if err != nil {
		return "", fmt.Errorf("fetch user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", apperr.Authentication("invalid credentials")
	}
	return id, nil
}

func (s *PostgresStore) UserExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return exists, nil
}
