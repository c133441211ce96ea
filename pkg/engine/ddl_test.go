package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skytable/skyd/pkg/model"
	"github.com/skytable/skyd/pkg/protocol"
)

func TestCreateKeyspaceAndTableThenUse(t *testing.T) {
	e, sess := newTestEngine(t)

	w := run(e, sess, "CREATE", "KEYSPACE", "analytics")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())

	w = run(e, sess, "CREATE", "TABLE", "analytics:events", "keymap(str,str)")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())

	w = run(e, sess, "CREATE", "TABLE", "analytics:events", "keymap(str,str)")
	assert.Equal(t, codeBytes(protocol.RespAlreadyExists), w.Bytes())

	w = run(e, sess, "USE", "analytics:events")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())
	assert.Equal(t, "analytics", sess.KeyspaceID())
	assert.Equal(t, "events", sess.TableID())

	w = run(e, sess, "SET", "k", "v")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())

	assert.True(t, e.Registry().PreloadTrip.Fire())
}

func TestCreateTableRejectsListAsKey(t *testing.T) {
	e, sess := newTestEngine(t)
	w := run(e, sess, "CREATE", "TABLE", "bad", "keymap(list<str>,str)")
	assert.Equal(t, codeBytes(protocol.RespUnknownModel), w.Bytes())
}

func TestCreateListTable(t *testing.T) {
	e, sess := newTestEngine(t)
	w := run(e, sess, "CREATE", "TABLE", "mylist", "keymap(str,list<str>)", "volatile")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())

	ref, ok := e.Registry().Memstore.Default().Keyspace.GetTable("mylist")
	assert.True(t, ok)
	assert.True(t, ref.Table.IsKVList())
	assert.True(t, ref.Table.Storage.IsVolatile())
}

func TestDropTableStillInUse(t *testing.T) {
	e, sess := newTestEngine(t)
	run(e, sess, "CREATE", "TABLE", "t1", "keymap(str,str)")
	run(e, sess, "USE", ":t1")

	w := run(e, sess, "DROP", "TABLE", "t1")
	assert.Equal(t, codeBytes(protocol.RespStillInUse), w.Bytes())

	run(e, sess, "USE", "default")
	w = run(e, sess, "DROP", "TABLE", "t1")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())
}

func TestDropKeyspaceProtectsDefaultAndSystem(t *testing.T) {
	e, sess := newTestEngine(t)
	w := run(e, sess, "DROP", "KEYSPACE", model.DefaultKeyspace)
	assert.Equal(t, codeBytes(protocol.RespProtectedObject), w.Bytes())
}

func TestCreateTableRejectsSystemKeyspace(t *testing.T) {
	e, sess := newTestEngine(t)
	w := run(e, sess, "CREATE", "TABLE", model.SystemKeyspace+":foo", "keymap(str,str)")
	assert.Equal(t, codeBytes(protocol.RespProtectedObject), w.Bytes())

	_, ok := e.Registry().Memstore.System().Keyspace.GetTable("foo")
	assert.False(t, ok)
}

func TestDropTableRejectsSystemKeyspace(t *testing.T) {
	e, sess := newTestEngine(t)
	w := run(e, sess, "DROP", "TABLE", model.SystemKeyspace+":auth")
	assert.Equal(t, codeBytes(protocol.RespProtectedObject), w.Bytes())
}

func TestUseColonFormRebindsTableOnly(t *testing.T) {
	e, sess := newTestEngine(t)
	run(e, sess, "CREATE", "TABLE", "t2", "keymap(str,str)")

	w := run(e, sess, "USE", ":t2")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())
	assert.Equal(t, model.DefaultKeyspace, sess.KeyspaceID())
	assert.Equal(t, "t2", sess.TableID())
}

func TestInspectKeyspacesAndTable(t *testing.T) {
	e, sess := newTestEngine(t)

	w := run(e, sess, "INSPECT", "KEYSPACES")
	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.StrArray([]string{model.DefaultKeyspace, model.SystemKeyspace})
	assert.Equal(t, want.Bytes(), w.Bytes())

	w = run(e, sess, "INSPECT", "TABLE")
	want = protocol.NewEncoder(protocol.SkyhashV2)
	want.StrArray([]string{model.DefaultTable, "keymap(binstr,binstr)", "persistent"})
	assert.Equal(t, want.Bytes(), w.Bytes())
}

func TestInspectKeyspaceWithNoneBoundIsDDLError(t *testing.T) {
	e, sess := newTestEngine(t)
	sess.Close()

	w := run(e, sess, "INSPECT", "KEYSPACE")
	assert.Equal(t, codeBytes(protocol.RespDefaultContainerUnset), w.Bytes())
}

func TestWhereAmIReportsBinding(t *testing.T) {
	e, sess := newTestEngine(t)
	w := run(e, sess, "WHEREAMI")
	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.StrArray([]string{model.DefaultKeyspace, model.DefaultTable, "anonymous"})
	assert.Equal(t, want.Bytes(), w.Bytes())
}
