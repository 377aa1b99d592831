package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kimianj/Continuum/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestUser(t *testing.T, store *Store, email string, isAdmin bool) models.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), email, "bcrypt-hash", "Test User", isAdmin)
	require.NoError(t, err)
	return user
}
