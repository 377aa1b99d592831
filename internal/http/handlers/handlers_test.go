package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kimianj/Continuum/internal/auth"
	"github.com/kimianj/Continuum/internal/models"
	"github.com/kimianj/Continuum/internal/storage/sqlite"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", "continuum", time.Hour)
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

// authedRequest builds a request carrying verified claims for the user, the
// way RequireAuth leaves it for handlers.
func authedRequest(t *testing.T, method, target string, body io.Reader, user models.User) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	claims := &auth.Claims{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
	}
	return req.WithContext(auth.WithClaims(req.Context(), claims))
}
