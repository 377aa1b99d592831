package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/kimianj/Continuum/internal/http/respond"
)

// Recovery converts a handler panic into a 500 response. The stack goes to
// the log; the caller gets a generic message.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					respond.Error(w, http.StatusInternalServerError, "Internal server error.")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
