package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimianj/Continuum/internal/auth"
	"github.com/kimianj/Continuum/internal/config"
	"github.com/kimianj/Continuum/internal/models"
	"github.com/kimianj/Continuum/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.Config{
		Port:              "0",
		DatabaseURL:       ":memory:",
		JWTSecret:         "test-secret",
		JWTIssuer:         "continuum",
		TokenTTL:          time.Hour,
		MinPasswordLength: 6,
		CORSOrigins:       []string{"*"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ts := httptest.NewServer(New(cfg, store, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, payload any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	fields := map[string]json.RawMessage{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &fields))
	}
	fields["_raw"] = raw
	return resp, fields
}

func signup(t *testing.T, baseURL, email, password, name string) string {
	t.Helper()
	resp, fields := doJSON(t, http.MethodPost, baseURL+"/auth/signup", "",
		map[string]string{"email": email, "password": password, "name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var token string
	require.NoError(t, json.Unmarshal(fields["token"], &token))
	require.NotEmpty(t, token)
	return token
}

func errorMessage(t *testing.T, fields map[string]json.RawMessage) string {
	t.Helper()
	var msg string
	require.NoError(t, json.Unmarshal(fields["error"], &msg))
	return msg
}

func TestSignupAndDuplicate(t *testing.T) {
	ts := newTestServer(t)

	signup(t, ts.URL, "a@x.com", "abcdef", "A")

	resp, fields := doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "",
		map[string]string{"email": "a@x.com", "password": "abcdef", "name": "A"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered.", errorMessage(t, fields))
}

func TestLoginWrongPasswordMatchesUnknownEmail(t *testing.T) {
	ts := newTestServer(t)
	signup(t, ts.URL, "a@x.com", "abcdef", "A")

	resp1, fields1 := doJSON(t, http.MethodPost, ts.URL+"/auth/login", "",
		map[string]string{"email": "a@x.com", "password": "wrong!"})
	resp2, fields2 := doJSON(t, http.MethodPost, ts.URL+"/auth/login", "",
		map[string]string{"email": "ghost@x.com", "password": "abcdef"})

	assert.Equal(t, http.StatusUnauthorized, resp1.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
	assert.Equal(t, "Invalid email or password.", errorMessage(t, fields1))
	assert.Equal(t, errorMessage(t, fields1), errorMessage(t, fields2))
}

func TestMeRequiresToken(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts.URL, "a@x.com", "abcdef", "A")

	resp, fields := doJSON(t, http.MethodGet, ts.URL+"/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, json.Unmarshal(fields["user"], &user))
	assert.Equal(t, "a@x.com", user.Email)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNotesAreIsolatedBetweenUsers(t *testing.T) {
	ts := newTestServer(t)
	tokenA := signup(t, ts.URL, "a@x.com", "abcdef", "A")
	tokenB := signup(t, ts.URL, "b@x.com", "abcdef", "B")

	resp, fields := doJSON(t, http.MethodPost, ts.URL+"/notes", tokenA,
		map[string]string{"title": "T", "content": "C"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var note models.Note
	require.NoError(t, json.Unmarshal(fields["_raw"], &note))
	require.NotZero(t, note.ID)

	// Owner list contains it; the other user's list does not.
	resp, fields = doJSON(t, http.MethodGet, ts.URL+"/notes", tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var notesA []models.Note
	require.NoError(t, json.Unmarshal(fields["_raw"], &notesA))
	require.Len(t, notesA, 1)

	resp, fields = doJSON(t, http.MethodGet, ts.URL+"/notes", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var notesB []models.Note
	require.NoError(t, json.Unmarshal(fields["_raw"], &notesB))
	assert.Empty(t, notesB)

	// Read, update, delete by the other user all answer 404 with the same
	// body as for a note that never existed.
	noteURL := fmt.Sprintf("%s/notes/%d", ts.URL, note.ID)
	ghostURL := fmt.Sprintf("%s/notes/%d", ts.URL, note.ID+1000)

	respForeign, foreignFields := doJSON(t, http.MethodGet, noteURL, tokenB, nil)
	respGhost, ghostFields := doJSON(t, http.MethodGet, ghostURL, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, respForeign.StatusCode)
	assert.Equal(t, http.StatusNotFound, respGhost.StatusCode)
	assert.Equal(t, string(ghostFields["_raw"]), string(foreignFields["_raw"]))

	resp, _ = doJSON(t, http.MethodPut, noteURL, tokenB, map[string]string{"title": "X", "content": "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, noteURL, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner still sees the original note.
	resp, fields = doJSON(t, http.MethodGet, noteURL, tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got models.Note
	require.NoError(t, json.Unmarshal(fields["_raw"], &got))
	assert.Equal(t, "T", got.Title)
}

func TestAdminEndpointsAreRoleGated(t *testing.T) {
	ts := newTestServer(t)
	token := signup(t, ts.URL, "a@x.com", "abcdef", "A")

	for _, path := range []string{"/admin/notes", "/admin/users", "/admin/stats"} {
		resp, fields := doJSON(t, http.MethodGet, ts.URL+path, token, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "path %s", path)
		assert.Equal(t, "Admin access required.", errorMessage(t, fields))

		resp, _ = doJSON(t, http.MethodGet, ts.URL+path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s unauthenticated", path)
	}
}

func TestAdminStatsAsAdmin(t *testing.T) {
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "continuum",
		TokenTTL:          time.Hour,
		MinPasswordLength: 6,
		CORSOrigins:       []string{"*"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(New(cfg, store, logger).Handler())
	t.Cleanup(ts.Close)

	// Admins exist only through out-of-band seeding, never via signup.
	admin, err := store.CreateUser(context.Background(), "admin@notes.app", "hash", "Admin", true)
	require.NoError(t, err)
	_, err = store.CreateNote(context.Background(), admin.ID, "T", "C")
	require.NoError(t, err)

	signup(t, ts.URL, "a@x.com", "abcdef", "A")

	// The seeded hash is not a real bcrypt hash, so mint the admin token
	// directly instead of going through /auth/login.
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	adminToken, err := tokens.Issue(admin)
	require.NoError(t, err)

	resp, statsFields := doJSON(t, http.MethodGet, ts.URL+"/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats models.Stats
	require.NoError(t, json.Unmarshal(statsFields["_raw"], &stats))
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalNotes)
	assert.Equal(t, int64(1), stats.TotalAdmins)
}

func TestSignupNeverGrantsAdmin(t *testing.T) {
	ts := newTestServer(t)

	resp, fields := doJSON(t, http.MethodPost, ts.URL+"/auth/signup", "",
		map[string]string{"email": "a@x.com", "password": "abcdef", "name": "A", "isAdmin": "true"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, json.Unmarshal(fields["user"], &user))
	assert.False(t, user.IsAdmin)
}

func TestHealthIsPublic(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
