package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pmusial/spizarka/pkg/auth"
)

type contextKey string

const (
	// UserIDKey carries the authenticated user's opaque ID
	UserIDKey contextKey = "user_id"
	// EmailKey carries the authenticated user's email, when present
	EmailKey contextKey = "email"
)

// SessionCookieName is the cookie set by the hosted identity provider
const SessionCookieName = "session"

// AuthMiddleware validates the session token. It accepts either an
// Authorization bearer header or the identity provider's session cookie.
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid session")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// UserID extracts the authenticated user ID from the request context
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
