package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/skytable/skyd/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) model.Data { return model.NewDataFromString(s) }

func TestKVBasic(t *testing.T) {
	e := NewKVEngine(false, false)

	inserted, err := e.Set(d("x"), d("100"))
	require.NoError(t, err)
	assert.True(t, inserted)

	v, ok, err := e.Get(d("x"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "100", v.String())

	inserted, err = e.Set(d("x"), d("200"))
	require.NoError(t, err)
	assert.False(t, inserted, "overwrite via SET must report false, not error")

	updated, err := e.Update(d("x"), d("200"))
	require.NoError(t, err)
	assert.True(t, updated)

	removed, err := e.Remove(d("x"))
	require.NoError(t, err)
	assert.True(t, removed)

	_, ok, err = e.Get(d("x"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVEncodingRejectsNonUTF8(t *testing.T) {
	e := NewKVEngine(true, true)
	bad := model.NewData([]byte{0xff, 0xfe})

	_, err := e.Set(bad, d("hello"))
	assert.ErrorIs(t, err, ErrEncoding)

	_, err = e.Set(d("hello"), bad)
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestKVUpsertAlwaysSucceeds(t *testing.T) {
	e := NewKVEngine(false, false)
	require.NoError(t, e.Upsert(d("k"), d("v1")))
	require.NoError(t, e.Upsert(d("k"), d("v2")))
	v, ok, _ := e.Get(d("k"))
	require.True(t, ok)
	assert.Equal(t, "v2", v.String())
}

func TestKVBatchFailsWholeOpOnEncodingError(t *testing.T) {
	e := NewKVEngine(true, false)
	keys := []model.Data{d("a"), model.NewData([]byte{0xff})}
	vals := []model.Data{d("1"), d("2")}

	_, err := e.MSet(keys, vals)
	assert.ErrorIs(t, err, ErrEncoding)

	// nothing from the batch should have been applied
	_, ok, _ := e.Get(d("a"))
	assert.False(t, ok)
}

func TestKVStrongSetAtomicity(t *testing.T) {
	e := NewKVEngine(false, false)
	require.NoError(t, e.Upsert(d("a"), d("1")))
	require.NoError(t, e.Upsert(d("b"), d("2")))

	// a present -> refuses, inserts neither a nor c
	err := e.SSet([]model.Data{d("a"), d("c")}, []model.Data{d("10"), d("30")})
	assert.ErrorIs(t, err, ErrOverwrite, "a already exists so SSET must refuse and mutate nothing")

	_, ok, _ := e.Get(d("c"))
	assert.False(t, ok, "SSET must not have inserted c when a already existed")
	v, _, _ := e.Get(d("a"))
	assert.Equal(t, "1", v.String(), "SSET must not have touched a's existing value")

	err = e.SSet([]model.Data{d("c"), d("e")}, []model.Data{d("30"), d("50")})
	assert.NoError(t, err)
	v, ok, _ = e.Get(d("c"))
	require.True(t, ok)
	assert.Equal(t, "30", v.String())
}

func TestKVStrongUpdateAndDelete(t *testing.T) {
	e := NewKVEngine(false, false)
	require.NoError(t, e.Upsert(d("a"), d("1")))

	ok, err := e.SUpdate([]model.Data{d("a"), d("missing")}, []model.Data{d("9"), d("9")})
	require.NoError(t, err)
	assert.False(t, ok, "SUPDATE must refuse when any key is absent")
	v, _, _ := e.Get(d("a"))
	assert.Equal(t, "1", v.String())

	ok, err = e.SUpdate([]model.Data{d("a")}, []model.Data{d("9")})
	require.NoError(t, err)
	assert.True(t, ok)
	v, _, _ = e.Get(d("a"))
	assert.Equal(t, "9", v.String())

	ok, err = e.SDel([]model.Data{d("a"), d("missing")})
	require.NoError(t, err)
	assert.False(t, ok)
	_, exists, _ := e.Get(d("a"))
	assert.True(t, exists, "SDEL must not remove a when another key is absent")
}

// TestKVStrongSetManyKeysNoDeadlock covers more keys than shards, which
// by pigeonhole forces at least two keys in the batch onto the same
// shard. A strong op that locked per key instead of per shard would
// self-deadlock here on the second Lock of an already-held shard.
func TestKVStrongSetManyKeysNoDeadlock(t *testing.T) {
	e := NewKVEngine(false, false)

	const n = 500
	keys := make([]model.Data, n)
	vals := make([]model.Data, n)
	for i := 0; i < n; i++ {
		keys[i] = d(fmt.Sprintf("k%d", i))
		vals[i] = d(fmt.Sprintf("v%d", i))
	}

	done := make(chan error, 1)
	go func() { done <- e.SSet(keys, vals) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("SSet deadlocked on a batch larger than the shard count")
	}

	for i := 0; i < n; i++ {
		v, ok, err := e.Get(keys[i])
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, vals[i], v)
	}
}

func TestKVConcurrentSetGet(t *testing.T) {
	e := NewKVEngine(false, false)
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k := d(string(rune('a' + i%26)))
			_, _ = e.Set(k, d("v"))
			_, _, _ = e.Get(k)
		}(i)
	}
	wg.Wait()
}
