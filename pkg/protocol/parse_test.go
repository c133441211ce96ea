package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseV2Simple(t *testing.T) {
	buf := []byte("*2\n3\nGET\n1\nx\n")
	q, n, err := Parse(buf, SkyhashV2)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	require.Equal(t, QuerySimple, q.Kind)
	require.Len(t, q.Elements, 2)
	assert.Equal(t, "GET", q.Elements[0].String())
	assert.Equal(t, "x", q.Elements[1].String())
}

func TestParseV2NeedMore(t *testing.T) {
	buf := []byte("*2\n3\nGET\n1\n")
	_, _, err := Parse(buf, SkyhashV2)
	assert.ErrorIs(t, err, ErrNeedMore)
}

func TestParseV2PartialHeader(t *testing.T) {
	buf := []byte("*2")
	_, _, err := Parse(buf, SkyhashV2)
	assert.ErrorIs(t, err, ErrNeedMore)
}

func TestParseV2UnexpectedByte(t *testing.T) {
	buf := []byte("X2\n")
	_, _, err := Parse(buf, SkyhashV2)
	assert.ErrorIs(t, err, ErrUnexpectedByte)
}

func TestParseV2BadCount(t *testing.T) {
	buf := []byte("*ab\n")
	_, _, err := Parse(buf, SkyhashV2)
	assert.ErrorIs(t, err, ErrDatatypeParse)
}

func TestParseV2Pipeline(t *testing.T) {
	// two sub-queries: ["GET","x"] and ["GET","y"]
	buf := []byte("$2\n2\n3\nGET\n1\nx\n2\n3\nGET\n1\ny\n")
	q, n, err := Parse(buf, SkyhashV2)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	require.Equal(t, QueryPipelined, q.Kind)
	require.Len(t, q.Pipeline, 2)
	assert.Equal(t, "x", q.Pipeline[0][1].String())
	assert.Equal(t, "y", q.Pipeline[1][1].String())
}

func TestParseV1ExtraLF(t *testing.T) {
	buf := []byte("*2\n3\nGET\n\n1\nx\n\n")
	q, n, err := Parse(buf, SkyhashV1)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	require.Len(t, q.Elements, 2)
	assert.Equal(t, "GET", q.Elements[0].String())
	assert.Equal(t, "x", q.Elements[1].String())
}

func TestParseLeavesBufferUntouchedOnNeedMore(t *testing.T) {
	partial := []byte("*2\n3\nGE")
	_, consumed, err := Parse(partial, SkyhashV2)
	assert.ErrorIs(t, err, ErrNeedMore)
	assert.Equal(t, 0, consumed)
}

func TestParseConsumesExactlyOneQueryLeavingTrailer(t *testing.T) {
	buf := []byte("*1\n1\nx\nTRAILER")
	q, n, err := Parse(buf, SkyhashV2)
	require.NoError(t, err)
	assert.Equal(t, "x", q.Elements[0].String())
	assert.Equal(t, len(buf)-len("TRAILER"), n)
}
