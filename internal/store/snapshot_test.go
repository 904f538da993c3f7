package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-admin/internal/infrastructure/memory"
	"github.com/jhoicas/storefront-admin/internal/store"
)

type prefs struct {
	Theme string `json:"theme"`
	Size  int    `json:"size"`
}

func TestSnapshots_LoadDevuelveDefaultSiFalta(t *testing.T) {
	s := store.NewSnapshots(memory.NewSnapshotRepository(), time.Second, zerolog.Nop())
	got := store.Load(s, "prefs", prefs{Theme: "light"}, nil)
	assert.Equal(t, prefs{Theme: "light"}, got)
}

func TestSnapshots_SaveLoad(t *testing.T) {
	repo := memory.NewSnapshotRepository()
	s := store.NewSnapshots(repo, 0, zerolog.Nop())
	require.NoError(t, store.Save(s, "prefs", prefs{Theme: "dark", Size: 14}))

	raw, ok, err := repo.Get(context.Background(), "prefs")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"theme":"dark","size":14}`, string(raw), "JSON sin envoltorio")

	assert.Equal(t, prefs{Theme: "dark", Size: 14}, store.Load(s, "prefs", prefs{}, nil))

	require.NoError(t, s.Clear("prefs"))
	assert.Equal(t, prefs{}, store.Load(s, "prefs", prefs{}, nil))
}

func TestSnapshots_NilEsNoOp(t *testing.T) {
	var s *store.Snapshots
	assert.NoError(t, store.Save(s, "k", 1))
	assert.Equal(t, 7, store.Load(s, "k", 7, nil))
	assert.NoError(t, s.Clear("k"))
}
