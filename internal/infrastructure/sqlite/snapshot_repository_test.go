package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-admin/internal/infrastructure/sqlite"
)

func openRepo(t *testing.T, path string) *sqlite.SnapshotRepo {
	t.Helper()
	repo, err := sqlite.NewSnapshotRepository(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSnapshotRepo_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t, filepath.Join(t.TempDir(), "nested", "store.db"))

	_, found, err := repo.Get(ctx, "cart-storage")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Put(ctx, "cart-storage", []byte(`{"items":[]}`)))
	require.NoError(t, repo.Put(ctx, "cart-storage", []byte(`{"items":[],"itemCount":0}`)))

	got, found, err := repo.Get(ctx, "cart-storage")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"items":[],"itemCount":0}`, string(got))

	require.NoError(t, repo.Delete(ctx, "cart-storage"))
	require.NoError(t, repo.Delete(ctx, "cart-storage"))
	_, found, err = repo.Get(ctx, "cart-storage")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSnapshotRepo_SobreviveAlReabrir(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	first, err := sqlite.NewSnapshotRepository(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "auth-storage", []byte(`{"isAuthenticated":false,"user":null}`)))
	require.NoError(t, first.Close())

	second := openRepo(t, path)
	got, found, err := second.Get(ctx, "auth-storage")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"isAuthenticated":false,"user":null}`, string(got))
	assert.Equal(t, path, second.Path())
}
