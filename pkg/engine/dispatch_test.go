package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytable/skyd/pkg/auth"
	"github.com/skytable/skyd/pkg/model"
	"github.com/skytable/skyd/pkg/protocol"
)

func newTestEngine(t *testing.T) (*Engine, *Session) {
	t.Helper()
	ms, err := model.NewMemstore()
	require.NoError(t, err)
	reg := NewRegistry(ms, auth.NewProvider(""))
	e := New(reg)
	sess := NewSession(reg)
	return e, sess
}

func run(e *Engine, sess *Session, args ...string) *protocol.Encoder {
	elems := make([]model.Data, len(args))
	for i, a := range args {
		elems[i] = model.NewDataFromString(a)
	}
	w := protocol.NewEncoder(protocol.SkyhashV2)
	e.Execute(sess, elems, w)
	return w
}

func codeBytes(c protocol.ResponseCode) []byte {
	w := protocol.NewEncoder(protocol.SkyhashV2)
	w.Code(c)
	return w.Bytes()
}

func TestUnknownVerb(t *testing.T) {
	e, sess := newTestEngine(t)
	w := run(e, sess, "BOGUS")
	assert.Equal(t, codeBytes(protocol.RespUnknownAction), w.Bytes())
}

func TestEmptyQueryIsActionError(t *testing.T) {
	e, sess := newTestEngine(t)
	w := run(e, sess)
	assert.Equal(t, codeBytes(protocol.RespActionError), w.Bytes())
}

func TestSetGetUpdateDel(t *testing.T) {
	e, sess := newTestEngine(t)

	w := run(e, sess, "SET", "k", "v1")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())

	w = run(e, sess, "SET", "k", "v2")
	assert.Equal(t, codeBytes(protocol.RespOverwriteError), w.Bytes())

	w = run(e, sess, "GET", "k")
	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.Binary([]byte("v1"))
	assert.Equal(t, want.Bytes(), w.Bytes())

	w = run(e, sess, "UPDATE", "k", "v2")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())

	w = run(e, sess, "DEL", "k")
	want = protocol.NewEncoder(protocol.SkyhashV2)
	want.Int(1)
	assert.Equal(t, want.Bytes(), w.Bytes())

	w = run(e, sess, "GET", "k")
	assert.Equal(t, codeBytes(protocol.RespNil), w.Bytes())
}

func TestExistsCountsPresentKeys(t *testing.T) {
	e, sess := newTestEngine(t)
	run(e, sess, "SET", "a", "1")
	w := run(e, sess, "EXISTS", "a", "b")
	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.Int(1)
	assert.Equal(t, want.Bytes(), w.Bytes())
}

func TestHeyaEchoesOrDefaults(t *testing.T) {
	e, sess := newTestEngine(t)
	w := run(e, sess, "HEYA")
	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.Str("HEY!")
	assert.Equal(t, want.Bytes(), w.Bytes())

	w = run(e, sess, "HEYA", "ping")
	want = protocol.NewEncoder(protocol.SkyhashV2)
	want.Str("ping")
	assert.Equal(t, want.Bytes(), w.Bytes())
}

func TestSSetAllOrNothing(t *testing.T) {
	e, sess := newTestEngine(t)
	run(e, sess, "SET", "x", "1")

	w := run(e, sess, "SSET", "x", "a", "y", "b")
	assert.Equal(t, codeBytes(protocol.RespOverwriteError), w.Bytes())

	w = run(e, sess, "GET", "y")
	assert.Equal(t, codeBytes(protocol.RespNil), w.Bytes())

	w = run(e, sess, "SSET", "y", "b")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())
}

func TestPipelineRunsEverySubQuery(t *testing.T) {
	e, sess := newTestEngine(t)
	w := protocol.NewEncoder(protocol.SkyhashV2)
	e.ExecutePipeline(sess, [][]model.Data{
		{model.NewDataFromString("SET"), model.NewDataFromString("p"), model.NewDataFromString("1")},
		{model.NewDataFromString("BOGUS")},
		{model.NewDataFromString("GET"), model.NewDataFromString("p")},
	}, w)

	want := protocol.NewEncoder(protocol.SkyhashV2)
	want.Code(protocol.RespOkay)
	want.Code(protocol.RespUnknownAction)
	want.Binary([]byte("1"))
	assert.Equal(t, want.Bytes(), w.Bytes())
}

func TestPoisonBlocksMutatingVerbsOnly(t *testing.T) {
	e, sess := newTestEngine(t)
	e.Registry().Poison()

	w := run(e, sess, "SET", "k", "v")
	assert.Equal(t, codeBytes(protocol.RespServerError), w.Bytes())

	w = run(e, sess, "GET", "k")
	assert.Equal(t, codeBytes(protocol.RespNil), w.Bytes())

	e.Registry().Unpoison()
	w = run(e, sess, "SET", "k", "v")
	assert.Equal(t, codeBytes(protocol.RespOkay), w.Bytes())
}
