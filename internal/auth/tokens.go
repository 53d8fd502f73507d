// Package auth issues and checks the tokens that identify callers.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/handika51/openmusic-api/internal/apperr"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type TokenClaims struct {
	UserID    string `json:"id"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenManager signs access tokens with one key and refresh tokens with
// another. Refresh tokens do not expire; they live until logout.
type TokenManager struct {
	accessKey  []byte
	refreshKey []byte
	accessAge  time.Duration
	now        func() time.Time
}

func NewTokenManager(accessKey, refreshKey []byte, accessAge time.Duration) *TokenManager {
	return &TokenManager{
		accessKey:  accessKey,
		refreshKey: refreshKey,
		accessAge:  accessAge,
		now:        time.Now,
	}
}

func (m *TokenManager) GenerateAccessToken(userID string) (string, error) {
	now := m.now()
	claims := TokenClaims{
		UserID:    userID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessAge)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessKey)
}

func (m *TokenManager) GenerateRefreshToken(userID string) (string, error) {
	claims := TokenClaims{
		UserID:    userID,
		TokenType: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(m.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshKey)
}

// VerifyAccessToken returns the user id carried by a valid access token.
func (m *TokenManager) VerifyAccessToken(raw string) (string, error) {
	claims, err := m.parse(raw, m.accessKey, tokenTypeAccess)
	if err != nil {
		return "", apperr.Authentication("invalid access token")
	}
	return claims.UserID, nil
}

// VerifyRefreshToken returns the user id carried by a valid refresh token.
func (m *TokenManager) VerifyRefreshToken(raw string) (string, error) {
	claims, err := m.parse(raw, m.refreshKey, tokenTypeRefresh)
	if err != nil {
		return "", apperr.Validation("invalid refresh token")
	}
	return claims.UserID, nil
}

func (m *TokenManager) parse(raw string, key []byte, tokenType string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.TokenType != tokenType || claims.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
