package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader carries the per-request identifier on the response.
const requestIDHeader = "X-Request-Id"

// RequestID assigns a fresh UUID to every request, echoed on the response so
// a client report can be matched to server logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// RequestIDFromHeader reads the identifier set by RequestID.
func RequestIDFromHeader(h http.Header) string {
	return h.Get(requestIDHeader)
}
