package middleware

import (
	"net/http"

	"github.com/mtlprog/taskboard/internal/auth"
)

// SessionMiddleware rejects API requests until the demo user has
// logged in.
type SessionMiddleware struct {
	auth *auth.Manager
}

// NewSessionMiddleware creates a new SessionMiddleware.
func NewSessionMiddleware(auth *auth.Manager) *SessionMiddleware {
	return &SessionMiddleware{auth: auth}
}

// Require passes the request through only for an authenticated
// session.
func (m *SessionMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.auth.Authenticated() {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
