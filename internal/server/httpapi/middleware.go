package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/finmate-app/finmate/internal/common"
	"github.com/finmate-app/finmate/internal/server/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the authenticated user's ID from the request context,
// "" when the request did not pass the authenticator.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// Authenticator verifies the Bearer token on every request and injects
// the user ID into the context. Missing or invalid credentials answer 401
// with a {detail} body.
func Authenticator(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if !strings.HasPrefix(header, common.BearerPrefix) {
				writeDetail(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			token := strings.TrimPrefix(header, common.BearerPrefix)
			userID, err := auth.GetUserIDFromToken(token, secretKey)
			if err != nil || userID == "" {
				writeDetail(w, http.StatusUnauthorized, "could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
