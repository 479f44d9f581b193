package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"candleshop-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_RoundTripAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileStorage(dir, 0)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, "0d9a:cart", []byte(`{"version":1,"items":[]}`)))

	second, err := NewFileStorage(dir, 0)
	require.NoError(t, err)
	data, err := second.Load(ctx, "0d9a:cart")

	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"items":[]}`, string(data))
}

func TestFileStorage_OverwriteLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStorage(dir, 0)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "k", []byte("one")))
	require.NoError(t, s.Save(ctx, "k", []byte("two")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))

	data, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestFileStorage_MissingAndDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStorage(filepath.Join(t.TempDir(), "nested", "sessions"), 0)
	require.NoError(t, err)

	_, err = s.Load(ctx, "nope")
	require.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	require.NoError(t, s.Save(ctx, "k", []byte("x")))
	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Load(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestFileStorage_EntryQuota(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStorage(t.TempDir(), 4)
	require.NoError(t, err)

	err = s.Save(ctx, "k", []byte("12345"))

	require.ErrorIs(t, err, domain.ErrQuotaExceeded)
	_, err = s.Load(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestFileStorage_KeysDoNotEscapeDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStorage(dir, 0)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "../../etc/passwd", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
