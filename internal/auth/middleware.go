package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/handika51/openmusic-api/internal/httputil"
)

type ctxUserIDKey struct{}

// Authenticate requires a bearer access token and stores its user id in the
// request context.
func Authenticate(tm *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httputil.WriteFail(w, http.StatusUnauthorized, "missing Authorization header")
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httputil.WriteFail(w, http.StatusUnauthorized, "invalid Authorization header")
				return
			}

			userID, err := tm.VerifyAccessToken(strings.TrimSpace(parts[1]))
			if err != nil {
				httputil.WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserIDKey{}, userID)
}

// UserIDFromContext returns the authenticated caller, or "" when there is
// none.
func UserIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxUserIDKey{}).(string)
	return s
}
