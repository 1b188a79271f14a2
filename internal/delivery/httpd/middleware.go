package httpd

import (
	"context"
	"net/http"
	"strings"

	"github.com/tartil-app/recital-service/internal/auth"
)

type contextKey string

const claimsContextKey contextKey = "session_claims"

// SessionAuth authenticates the request from the session cookie, falling
// back to an Authorization bearer header. The parsed claims are stored on
// the request context.
func (h *Handler) SessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.sessionToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := h.tokens.Parse(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(h.authConfig.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return h.requireRole(next, func(c *auth.Claims) bool { return c.IsAdmin() }, "Instructor access required")
}

func (h *Handler) RequireStudent(next http.Handler) http.Handler {
	return h.requireRole(next, func(c *auth.Claims) bool { return c.IsStudent() }, "Student access required")
}

func (h *Handler) requireRole(next http.Handler, allowed func(*auth.Claims) bool, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !allowed(claims) {
			writeError(w, http.StatusForbidden, message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}
