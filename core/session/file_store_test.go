package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmakit/backoffice/core/session"
)

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store := session.NewFileStore(path)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)

	sess := authenticated("abc")
	sess.Store = &session.StoreProfile{ID: 3, Name: "Downtown Pharmacy"}
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", loaded.Token)
	require.NotNil(t, loaded.User)
	assert.Equal(t, "amira@example.com", loaded.User.Email)
	require.NotNil(t, loaded.Store)
	assert.Equal(t, "Downtown Pharmacy", loaded.Store.Name)
}

func TestFileStore_ColdStartReload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	first := session.NewFileStore(path)
	m, err := session.NewManager(ctx, first)
	require.NoError(t, err)
	require.NoError(t, m.SetCredentials(ctx, authenticated("abc")))

	// A fresh store and manager simulate a process restart.
	reloaded, err := session.NewManager(ctx, session.NewFileStore(path))
	require.NoError(t, err)
	assert.Equal(t, "abc", reloaded.Token())
}

func TestFileStore_CorruptFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := session.NewFileStore(path)
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrCorruptSnapshot)

	// The manager must still start, unauthenticated.
	m, err := session.NewManager(ctx, store)
	require.NoError(t, err)
	assert.False(t, m.IsAuthenticated())
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewFileStore(path)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Save(ctx, authenticated("x")))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestFileStore_FilePermissions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewFileStore(path)
	require.NoError(t, store.Save(ctx, authenticated("x")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
