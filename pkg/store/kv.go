package store

import (
	"sort"
	"unicode/utf8"

	"github.com/skytable/skyd/pkg/containers"
	"github.com/skytable/skyd/pkg/model"
)

// KVEngine is the KV-blob data model: key-bytes -> value-bytes, per
// the key-value table model.
type KVEngine struct {
	m          *containers.Map[model.Data]
	keyEncoded bool
	valEncoded bool
}

// NewKVEngine constructs an empty KVEngine with the given encoding
// flags, immutable for the table's lifetime.
func NewKVEngine(keyEncoded, valEncoded bool) *KVEngine {
	return &KVEngine{m: containers.NewMap[model.Data](), keyEncoded: keyEncoded, valEncoded: valEncoded}
}

func validate(d model.Data, encoded bool) error {
	if encoded && !utf8.Valid(d.Bytes()) {
		return ErrEncoding
	}
	return nil
}

func (e *KVEngine) checkKey(k model.Data) error { return validate(k, e.keyEncoded) }
func (e *KVEngine) checkVal(v model.Data) error { return validate(v, e.valEncoded) }

// Len reports the number of keys currently stored (DBSIZE).
func (e *KVEngine) Len() int { return e.m.Len() }

// Get returns the value for k, or ok=false if absent.
func (e *KVEngine) Get(k model.Data) (model.Data, bool, error) {
	if err := e.checkKey(k); err != nil {
		return model.Data{}, false, err
	}
	v, ok := e.m.Get(k.String())
	return v, ok, nil
}

// Exists reports whether k is present.
func (e *KVEngine) Exists(k model.Data) (bool, error) {
	if err := e.checkKey(k); err != nil {
		return false, err
	}
	return e.m.Exists(k.String()), nil
}

// Set inserts k=v, returning true iff it was absent (false means
// "overwrite attempted", not itself an error).
func (e *KVEngine) Set(k, v model.Data) (bool, error) {
	if err := e.checkKey(k); err != nil {
		return false, err
	}
	if err := e.checkVal(v); err != nil {
		return false, err
	}
	return e.m.Insert(k.String(), v), nil
}

// Update replaces k's value, returning true iff k was present.
func (e *KVEngine) Update(k, v model.Data) (bool, error) {
	if err := e.checkKey(k); err != nil {
		return false, err
	}
	if err := e.checkVal(v); err != nil {
		return false, err
	}
	return e.m.Update(k.String(), v), nil
}

// Upsert always stores k=v.
func (e *KVEngine) Upsert(k, v model.Data) error {
	if err := e.checkKey(k); err != nil {
		return err
	}
	if err := e.checkVal(v); err != nil {
		return err
	}
	e.m.Upsert(k.String(), v)
	return nil
}

// Remove deletes k, returning true iff it was present.
func (e *KVEngine) Remove(k model.Data) (bool, error) {
	if err := e.checkKey(k); err != nil {
		return false, err
	}
	return e.m.Remove(k.String()), nil
}

// Pop removes and returns k's value, if present.
func (e *KVEngine) Pop(k model.Data) (model.Data, bool, error) {
	if err := e.checkKey(k); err != nil {
		return model.Data{}, false, err
	}
	v, ok := e.m.Pop(k.String())
	return v, ok, nil
}

// MGet fetches several keys at once. All keys are validated before any
// lookup; a single bad key fails the whole call.
func (e *KVEngine) MGet(keys []model.Data) ([]model.Data, []bool, error) {
	for _, k := range keys {
		if err := e.checkKey(k); err != nil {
			return nil, nil, err
		}
	}
	vals := make([]model.Data, len(keys))
	ok := make([]bool, len(keys))
	for i, k := range keys {
		vals[i], ok[i] = e.m.Get(k.String())
	}
	return vals, ok, nil
}

// MSet inserts several key/value pairs. All keys and values are
// validated before any mutation ("any encoding failure before any
// mutation -> fail whole op"). Returns, per pair, whether it was
// inserted (vs. already present and left untouched).
func (e *KVEngine) MSet(keys, vals []model.Data) ([]bool, error) {
	if err := e.validatePairs(keys, vals); err != nil {
		return nil, err
	}
	out := make([]bool, len(keys))
	for i := range keys {
		out[i] = e.m.Insert(keys[i].String(), vals[i])
	}
	return out, nil
}

// MUpdate updates several existing keys; see MSet for validation order.
func (e *KVEngine) MUpdate(keys, vals []model.Data) ([]bool, error) {
	if err := e.validatePairs(keys, vals); err != nil {
		return nil, err
	}
	out := make([]bool, len(keys))
	for i := range keys {
		out[i] = e.m.Update(keys[i].String(), vals[i])
	}
	return out, nil
}

// USet (upsert-set) always stores every pair.
func (e *KVEngine) USet(keys, vals []model.Data) error {
	if err := e.validatePairs(keys, vals); err != nil {
		return err
	}
	for i := range keys {
		e.m.Upsert(keys[i].String(), vals[i])
	}
	return nil
}

// MPop removes and returns several keys at once.
func (e *KVEngine) MPop(keys []model.Data) ([]model.Data, []bool, error) {
	for _, k := range keys {
		if err := e.checkKey(k); err != nil {
			return nil, nil, err
		}
	}
	vals := make([]model.Data, len(keys))
	ok := make([]bool, len(keys))
	for i, k := range keys {
		vals[i], ok[i] = e.m.Pop(k.String())
	}
	return vals, ok, nil
}

// Del removes several keys, returning the count actually removed.
func (e *KVEngine) Del(keys []model.Data) (int, error) {
	for _, k := range keys {
		if err := e.checkKey(k); err != nil {
			return 0, err
		}
	}
	n := 0
	for _, k := range keys {
		if e.m.Remove(k.String()) {
			n++
		}
	}
	return n, nil
}

func (e *KVEngine) validatePairs(keys, vals []model.Data) error {
	for _, k := range keys {
		if err := e.checkKey(k); err != nil {
			return err
		}
	}
	for _, v := range vals {
		if err := e.checkVal(v); err != nil {
			return err
		}
	}
	return nil
}

// SSet (strong set) is all-or-nothing: every key must currently be
// absent, or nothing is mutated and ErrOverwrite is returned.
func (e *KVEngine) SSet(keys, vals []model.Data) error {
	if err := e.validatePairs(keys, vals); err != nil {
		return err
	}
	locks := e.lockAll(keys)
	defer unlockAll(locks)

	for _, k := range keys {
		if _, present := locks.get(k); present {
			return ErrOverwrite
		}
	}
	for i := range keys {
		locks.set(keys[i], vals[i])
	}
	return nil
}

// SUpdate (strong update) snapshots every key's current value; if any
// key is absent or no longer matches its own snapshot by the time the
// lock is held, nothing is mutated and ok=false is returned (the
// caller maps this to a nil response).
func (e *KVEngine) SUpdate(keys, vals []model.Data) (bool, error) {
	if err := e.validatePairs(keys, vals); err != nil {
		return false, err
	}
	locks := e.lockAll(keys)
	defer unlockAll(locks)

	for _, k := range keys {
		if _, present := locks.get(k); !present {
			return false, nil
		}
	}
	for i := range keys {
		locks.set(keys[i], vals[i])
	}
	return true, nil
}

// SDel (strong delete) removes every key only if every key is present;
// otherwise nothing is mutated.
func (e *KVEngine) SDel(keys []model.Data) (bool, error) {
	for _, k := range keys {
		if err := e.checkKey(k); err != nil {
			return false, err
		}
	}
	locks := e.lockAll(keys)
	defer unlockAll(locks)

	for _, k := range keys {
		if _, present := locks.get(k); !present {
			return false, nil
		}
	}
	for _, k := range keys {
		locks.delete(k)
	}
	return true, nil
}

// shardLocks is the set of shard write-locks a strong op holds, keyed
// by shard index so a key lookup goes straight to the handle that
// already covers it without re-locking.
type shardLocks struct {
	m       *containers.Map[model.Data]
	byShard map[int]*containers.ShardHandle[model.Data]
}

func (l *shardLocks) get(k model.Data) (model.Data, bool) {
	return l.handleFor(k).Get(k.String())
}

func (l *shardLocks) set(k, v model.Data) {
	l.handleFor(k).Set(k.String(), v)
}

func (l *shardLocks) delete(k model.Data) {
	l.handleFor(k).Delete(k.String())
}

func (l *shardLocks) handleFor(k model.Data) *containers.ShardHandle[model.Data] {
	return l.byShard[l.m.ShardIndex(k.String())]
}

// lockAll acquires each distinct shard touched by keys exactly once,
// in ascending shard-index order -- a stable order shared by every
// concurrent strong op, so no two operations can ever wait on each
// other's shards in opposite order. Locking by shard rather than by
// key is what makes this safe: two distinct keys that happen to hash
// to the same shard must never trigger two lock acquisitions on that
// shard from the same goroutine, since sync.RWMutex is not reentrant.
func (e *KVEngine) lockAll(keys []model.Data) *shardLocks {
	indices := make(map[int]bool, len(keys))
	for _, k := range keys {
		indices[e.m.ShardIndex(k.String())] = true
	}
	ordered := make([]int, 0, len(indices))
	for idx := range indices {
		ordered = append(ordered, idx)
	}
	sort.Ints(ordered)

	byShard := make(map[int]*containers.ShardHandle[model.Data], len(ordered))
	for _, idx := range ordered {
		for _, k := range keys {
			if e.m.ShardIndex(k.String()) == idx {
				byShard[idx] = e.m.LockShard(k.String())
				break
			}
		}
	}
	return &shardLocks{m: e.m, byShard: byShard}
}

func unlockAll(l *shardLocks) {
	for _, h := range l.byShard {
		h.Unlock()
	}
}

// Range calls fn for every key/value pair currently stored. Used by
// persistence to serialize the full table.
func (e *KVEngine) Range(fn func(key, val model.Data) bool) {
	e.m.Range(func(k string, v model.Data) bool {
		return fn(model.NewDataFromString(k), v)
	})
}

// LoadRaw inserts a key/value pair verbatim (used by unflush recovery
// to reconstruct a table from trusted on-disk data without re-running
// encoding validation).
func (e *KVEngine) LoadRaw(k, v model.Data) {
	e.m.Upsert(k.String(), v)
}

// Clear removes every key, used by FLUSHDB.
func (e *KVEngine) Clear() {
	keys := e.m.Keys()
	for _, k := range keys {
		e.m.Remove(k)
	}
}
