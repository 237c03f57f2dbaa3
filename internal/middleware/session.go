package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/moviemates/backend/internal/auth"
	"github.com/moviemates/backend/internal/logging"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "session_token"

// SessionResolver maps a session token to a user id.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// Session resolves the session token once per request and stores the user id
// on the context. Requests without a valid session pass through anonymously;
// each handler decides whether authentication is required.
func Session(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				logging.FromContext(r.Context()).Warn("session resolution failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
