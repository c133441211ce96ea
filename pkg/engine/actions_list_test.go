package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skytable/skyd/pkg/protocol"
)

func newListTestEngine(t *testing.T) (*Engine, *Session) {
	t.Helper()
	e, sess := newTestEngine(t)
	w := run(e, sess, "CREATE", "TABLE", "mylist", "keymap(str,list<str>)")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())
	w = run(e, sess, "USE", ":mylist")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())
	return e, sess
}

func TestLSetAndLGetAll(t *testing.T) {
	e, sess := newListTestEngine(t)

	w := run(e, sess, "LSET", "l1", "a", "b", "c")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())

	w = run(e, sess, "LGET", "l1")
	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.TypedArrayHeader(3)
	want.Binary([]byte("a"))
	want.Binary([]byte("b"))
	want.Binary([]byte("c"))
	assert.Equal(t, want.Bytes(), w.Bytes())
}

func TestLGetMissingListIsNil(t *testing.T) {
	e, sess := newListTestEngine(t)
	w := run(e, sess, "LGET", "nope")
	assert.Equal(t, codeBytes(protocol.RespNil), w.Bytes())
}

func TestLGetLenAndValueAt(t *testing.T) {
	e, sess := newListTestEngine(t)
	run(e, sess, "LSET", "l1", "a", "b", "c")

	w := run(e, sess, "LGET", "l1", "LEN")
	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.Int(3)
	assert.Equal(t, want.Bytes(), w.Bytes())

	w = run(e, sess, "LGET", "l1", "VALUEAT", "1")
	want = protocol.NewEncoder(protocol.SkyhashV2)
	want.Binary([]byte("b"))
	assert.Equal(t, want.Bytes(), w.Bytes())

	w = run(e, sess, "LGET", "l1", "FIRST")
	want = protocol.NewEncoder(protocol.SkyhashV2)
	want.Binary([]byte("a"))
	assert.Equal(t, want.Bytes(), w.Bytes())

	w = run(e, sess, "LGET", "l1", "LAST")
	want = protocol.NewEncoder(protocol.SkyhashV2)
	want.Binary([]byte("c"))
	assert.Equal(t, want.Bytes(), w.Bytes())
}

func TestLModPushPopInsertRemoveClear(t *testing.T) {
	e, sess := newListTestEngine(t)
	run(e, sess, "LSET", "l1", "a")

	w := run(e, sess, "LMOD", "l1", "PUSH", "b", "c")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())

	w = run(e, sess, "LMOD", "l1", "POP")
	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.Binary([]byte("c"))
	assert.Equal(t, want.Bytes(), w.Bytes())

	w = run(e, sess, "LMOD", "l1", "INSERT", "1", "x")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())

	w = run(e, sess, "LGET", "l1")
	want = protocol.NewEncoder(protocol.SkyhashV2)
	want.TypedArrayHeader(3)
	want.Binary([]byte("a"))
	want.Binary([]byte("x"))
	want.Binary([]byte("b"))
	assert.Equal(t, want.Bytes(), w.Bytes())

	w = run(e, sess, "LMOD", "l1", "REMOVE", "0")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())

	w = run(e, sess, "LMOD", "l1", "CLEAR")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())

	w = run(e, sess, "LGET", "l1")
	want = protocol.NewEncoder(protocol.SkyhashV2)
	want.TypedArrayHeader(0)
	assert.Equal(t, want.Bytes(), w.Bytes())
}

func TestLSKeysNoArgsUsesCurrentTableAndDefaultCount(t *testing.T) {
	e, sess := newListTestEngine(t)
	for i := 0; i < 3; i++ {
		run(e, sess, "LSET", "l"+string(rune('0'+i)), "v")
	}

	w := run(e, sess, "LSKEYS")
	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.FlatArrayHeader(3)
	want.Str("l0")
	want.Str("l1")
	want.Str("l2")
	assert.Equal(t, want.Bytes(), w.Bytes())
}

func TestLSKeysSingleNumericArgIsCountNotEntity(t *testing.T) {
	e, sess := newListTestEngine(t)
	run(e, sess, "LSET", "l0", "v")
	run(e, sess, "LSET", "l1", "v")

	w := run(e, sess, "LSKEYS", "1")
	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.FlatArrayHeader(1)
	want.Str("l0")
	assert.Equal(t, want.Bytes(), w.Bytes())
}

func TestLSKeysSingleNonNumericArgIsEntity(t *testing.T) {
	e, sess := newListTestEngine(t)
	run(e, sess, "LSET", "l0", "v")

	w := run(e, sess, "LSKEYS", "mylist")
	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.FlatArrayHeader(1)
	want.Str("l0")
	assert.Equal(t, want.Bytes(), w.Bytes())
}

func TestLSKeysEntityAndCount(t *testing.T) {
	e, sess := newListTestEngine(t)
	run(e, sess, "LSET", "l0", "v")
	run(e, sess, "LSET", "l1", "v")
	run(e, sess, "LSET", "l2", "v")

	w := run(e, sess, "LSKEYS", "mylist", "2")
	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.FlatArrayHeader(2)
	want.Str("l0")
	want.Str("l1")
	assert.Equal(t, want.Bytes(), w.Bytes())
}

func TestLGetWrongModelOnKVTable(t *testing.T) {
	e, sess := newTestEngine(t)
	w := run(e, sess, "LGET", "anything")
	assert.Equal(t, codeBytes(protocol.RespWrongModel), w.Bytes())
}
