package store

import "context"
import "path/filepath"
import "testing"

import "github.com/google/go-cmp/cmp"
import "github.com/pkg/errors"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/neurlang/blobcount/datasets/blobs"
import "github.com/neurlang/blobcount/monitoring"

func open(t *testing.T) *Store {
	t.Helper()
	monitoring.SetLogger(t.Logf)
	t.Cleanup(func() { monitoring.SetLogger(nil) })
	s, err := Open(filepath.Join(t.TempDir(), "blobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func rows(d blobs.Dataslice) (o [][][]int) {
	for _, s := range d {
		o = append(o, s.Grid.Rows())
	}
	return
}

func TestMigrations(t *testing.T) {
	s := open(t)
	version, dirty, err := s.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	// running again is a no-op
	require.NoError(t, s.MigrateUp())

	require.NoError(t, s.MigrateDown())
	version, _, err = s.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	require.NoError(t, s.MigrateUp())
}

func TestSaveLoad(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	d := blobs.GenerateDataset(40, false)

	id, err := s.SaveNamed(ctx, "first", d, false)
	require.NoError(t, err)
	assert.Len(t, id, 36)

	got, info, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, info.ID)
	assert.Equal(t, "first", info.Name)
	assert.Equal(t, 40, info.Samples)
	assert.Equal(t, blobs.GridSize, info.GridSize)
	assert.False(t, info.AllowOverlap)
	assert.False(t, info.Created.IsZero())

	require.Len(t, got, 40)
	for i := range d {
		assert.Equal(t, d[i].Label, got[i].Label, "sample %d", i)
	}
	if diff := cmp.Diff(rows(d), rows(got)); diff != "" {
		t.Errorf("grids differ (-saved +loaded):\n%s", diff)
	}
	assert.Equal(t, d.Digest(), got.Digest())
}

func TestSaveEmpty(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	id, err := s.Save(ctx, nil, true)
	require.NoError(t, err)
	got, info, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, info.AllowOverlap)
}

func TestListDelete(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	a, err := s.Save(ctx, blobs.GenerateDataset(3, true), true)
	require.NoError(t, err)
	b, err := s.Save(ctx, blobs.GenerateDataset(5, false), false)
	require.NoError(t, err)

	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	ids := map[string]int{list[0].ID: list[0].Samples, list[1].ID: list[1].Samples}
	assert.Equal(t, map[string]int{a: 3, b: 5}, ids)

	require.NoError(t, s.Delete(ctx, a))
	_, _, err = s.Load(ctx, a)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, a), ErrNotFound))

	var orphans int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM samples WHERE dataset_id = ?`, a).Scan(&orphans))
	assert.Zero(t, orphans)

	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b, list[0].ID)
}
