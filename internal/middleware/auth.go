package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/kimianj/Continuum/internal/auth"
	"github.com/kimianj/Continuum/internal/http/respond"
)

// RequireAuth extracts and verifies the bearer token, attaching the resolved
// claims to the request context. This is the single place a caller's identity
// is established; it does not decide what the caller may do.
func RequireAuth(logger *slog.Logger, tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				logger.Warn("token rejected", "error", err, "path", r.URL.Path)
				respond.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin gates a route on the admin flag of the resolved identity.
// Must be layered inside RequireAuth.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.ClaimsFromContext(r.Context())
			if claims == nil {
				respond.Error(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			if !claims.IsAdmin {
				respond.Error(w, http.StatusForbidden, "Admin access required.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the credential from an Authorization header value.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
