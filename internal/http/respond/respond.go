package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// JSON writes payload with the given status. Response bodies are flat JSON;
// errors use the {"error": message} shape throughout the API.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}

// Error writes an error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
