package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemstoreBootstraps(t *testing.T) {
	ms, err := NewMemstore()
	require.NoError(t, err)

	def, ok := ms.GetKeyspace(DefaultKeyspace)
	require.True(t, ok)
	_, ok = def.Keyspace.GetTable(DefaultTable)
	assert.True(t, ok)

	_, ok = ms.GetKeyspace(SystemKeyspace)
	assert.True(t, ok)
}

func TestDefaultAndSystemCannotBeDropped(t *testing.T) {
	ms, err := NewMemstore()
	require.NoError(t, err)

	assert.ErrorIs(t, ms.DropKeyspace(DefaultKeyspace, false), ErrProtectedObject)
	assert.ErrorIs(t, ms.DropKeyspace(SystemKeyspace, true), ErrProtectedObject)
}

func TestDropKeyspaceRequiresEmpty(t *testing.T) {
	ms, err := NewMemstore()
	require.NoError(t, err)
	require.NoError(t, ms.CreateKeyspace("k1"))

	ks, _ := ms.GetKeyspace("k1")
	tbl, err := NewTable("t1", MC_KV_NN, StoragePersistent)
	require.NoError(t, err)
	require.NoError(t, ks.Keyspace.CreateTable(NewTableRef(tbl)))

	assert.ErrorIs(t, ms.DropKeyspace("k1", false), ErrKeyspaceNotEmpty)
	assert.NoError(t, ms.DropKeyspace("k1", true))

	_, ok := ms.GetKeyspace("k1")
	assert.False(t, ok)
}

func TestDefaultTableCannotBeDropped(t *testing.T) {
	ms, err := NewMemstore()
	require.NoError(t, err)
	def, _ := ms.GetKeyspace(DefaultKeyspace)

	assert.ErrorIs(t, def.Keyspace.DropTable(DefaultTable), ErrProtectedObject)
	_, ok := def.Keyspace.GetTable(DefaultTable)
	assert.True(t, ok)
}

func TestDropTableRequiresUnreferenced(t *testing.T) {
	ms, err := NewMemstore()
	require.NoError(t, err)
	def, _ := ms.GetKeyspace(DefaultKeyspace)

	tbl, err := NewTable("t1", MC_KV_NN, StoragePersistent)
	require.NoError(t, err)
	ref := NewTableRef(tbl)
	require.NoError(t, def.Keyspace.CreateTable(ref))

	held := ref.Acquire()
	assert.ErrorIs(t, def.Keyspace.DropTable("t1"), ErrStillInUse)

	held.Release()
	assert.NoError(t, def.Keyspace.DropTable("t1"))
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateKeyspaceID("my_ks1"))
	assert.Error(t, ValidateKeyspaceID("1bad"))
	assert.Error(t, ValidateKeyspaceID("PRELOAD"))
	assert.Error(t, ValidateKeyspaceID(""))
}

func TestModelCodeTable(t *testing.T) {
	m, kEnc, vEnc, ok := MC_KV_YY.Describe()
	require.True(t, ok)
	assert.Equal(t, ModelKV, m)
	assert.True(t, kEnc)
	assert.True(t, vEnc)

	code, err := ModelCodeFor(ModelKVList, true, false)
	require.NoError(t, err)
	assert.Equal(t, MC_KVList_YN, code)
}
