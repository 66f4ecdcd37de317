package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cybermarket/server/internal/auth"
	"github.com/cybermarket/server/internal/logger"
)

type contextKey string

const claimsContextKey contextKey = "auth_claims"

// Verifier validates a raw token string and returns its claims.
// auth.Service satisfies this through its Verify method.
type Verifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticator requires a valid bearer token on every request it wraps.
// Verified claims are stored in the request context for handlers to read
// via ClaimsFromContext or UserIDFromContext.
func Authenticator(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			header := r.Header.Get(HeaderAuthorization)
			if !strings.HasPrefix(header, BearerPrefix) {
				log.Warn("Missing bearer token", "path", r.URL.Path)
				respondAuthError(w, http.StatusUnauthorized, ErrMsgMissingToken)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
			claims, err := verifier.Verify(token)
			if err != nil {
				log.Warn("Token verification failed", "path", r.URL.Path, "error", err)
				respondAuthError(w, http.StatusUnauthorized, ErrMsgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose verified claims lack the admin flag.
// Must run after Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || !claims.IsAdmin {
			logger.FromContext(r.Context()).Warn("Admin route denied", "path", r.URL.Path)
			respondAuthError(w, http.StatusForbidden, ErrMsgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext returns the verified claims stored by Authenticator.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}

// UserIDFromContext returns the authenticated user's ID, or "" when the
// request did not pass through Authenticator.
func UserIDFromContext(ctx context.Context) string {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.UserID
	}
	return ""
}

// WithClaims injects claims directly, for handler tests that bypass the
// token round-trip.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

func respondAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
