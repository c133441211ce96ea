package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytable/skyd/pkg/model"
	"github.com/skytable/skyd/pkg/store"
)

func TestKVTableRoundTrip(t *testing.T) {
	kv := store.NewKVEngine(true, true)
	_, err := kv.Set(model.NewDataFromString("a"), model.NewDataFromString("1"))
	require.NoError(t, err)
	_, err = kv.Set(model.NewDataFromString("b"), model.NewDataFromString("2"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tbl")
	require.NoError(t, WriteKVTable(path, kv))

	loaded := store.NewKVEngine(true, true)
	require.NoError(t, ReadKVTable(path, nativeOrder, loaded))

	v, ok, err := loaded.Get(model.NewDataFromString("a"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1", v.String())

	assert.Equal(t, kv.Len(), loaded.Len())
}

func TestListTableRoundTrip(t *testing.T) {
	le := store.NewListEngine(true, true)
	require.NoError(t, le.LSet(model.NewDataFromString("mylist"), nil))
	_, err := le.LPush(model.NewDataFromString("mylist"), []model.Data{model.NewDataFromString("x"), model.NewDataFromString("y")})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tbl")
	require.NoError(t, WriteListTable(path, le))

	loaded := store.NewListEngine(true, true)
	require.NoError(t, ReadListTable(path, nativeOrder, loaded))

	vals, ok, err := loaded.LGetAll(model.NewDataFromString("mylist"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, vals, 2)
}
