package containers

import (
	"hash/maphash"
	"math/bits"
	"runtime"
	"sync"
)

// defaultShardMultiplier approximates a "~16 x hardware
// parallelism" shard count.
const defaultShardMultiplier = 16

var seed = maphash.MakeSeed()

func hashString(s string) uint64 {
	return maphash.String(seed, s)
}

// shard is one independent hashtable guarded by its own read/write lock.
type shard[V any] struct {
	mu sync.RWMutex
	m  map[string]V
}

// Map is a striped, string-keyed concurrent hashmap. The zero value is
// not usable; construct with NewMap.
type Map[V any] struct {
	shards []*shard[V]
	shift  uint
	mask   uint64
}

// NewMap constructs a Map sized for the current GOMAXPROCS, matching
// the shard-count formula below.
func NewMap[V any]() *Map[V] {
	n := runtime.GOMAXPROCS(0) * defaultShardMultiplier
	return NewMapShards[V](n)
}

// NewMapShards constructs a Map with an explicit shard count, rounded
// up to the next power of two (minimum 1).
func NewMapShards[V any](shardCountHint int) *Map[V] {
	if shardCountHint < 1 {
		shardCountHint = 1
	}
	count := 1
	for count < shardCountHint {
		count <<= 1
	}
	shards := make([]*shard[V], count)
	for i := range shards {
		shards[i] = &shard[V]{m: make(map[string]V)}
	}
	log2 := bits.TrailingZeros(uint(count))
	return &Map[V]{
		shards: shards,
		shift:  uint(64 - log2),
		mask:   uint64(count - 1),
	}
}

func (m *Map[V]) shardFor(key string) *shard[V] {
	h := hashString(key)
	idx := (h >> m.shift) & m.mask
	return m.shards[idx]
}

// Len returns the total number of entries across all shards. It is a
// point-in-time snapshot under concurrent mutation.
func (m *Map[V]) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.m)
		s.mu.RUnlock()
	}
	return n
}

// Get returns the value for key and whether it was present.
func (m *Map[V]) Get(key string) (V, bool) {
	s := m.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

// Exists reports whether key is present.
func (m *Map[V]) Exists(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Insert stores v under key only if absent. Returns true iff it was
// inserted, true only if the key was previously absent.
func (m *Map[V]) Insert(key string, v V) bool {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; ok {
		return false
	}
	s.m[key] = v
	return true
}

// Update replaces the value for key only if present. Returns true iff
// it was updated, true only if the key was already present.
func (m *Map[V]) Update(key string, v V) bool {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; !ok {
		return false
	}
	s.m[key] = v
	return true
}

// Upsert always stores v under key, insert-or-replace.
func (m *Map[V]) Upsert(key string, v V) {
	s := m.shardFor(key)
	s.mu.Lock()
	s.m[key] = v
	s.mu.Unlock()
}

// Remove deletes key, returning true iff it was present.
func (m *Map[V]) Remove(key string) bool {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; !ok {
		return false
	}
	delete(s.m, key)
	return true
}

// Pop removes and returns the value for key, if present.
func (m *Map[V]) Pop(key string) (V, bool) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if ok {
		delete(s.m, key)
	}
	return v, ok
}

// RemoveIf deletes key only if pred(currentValue) returns true. Returns
// true iff the key was removed.
func (m *Map[V]) RemoveIf(key string, pred func(V) bool) bool {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok || !pred(v) {
		return false
	}
	delete(s.m, key)
	return true
}

// Entry acquires the shard lock for key and returns a handle that lets
// the caller inspect and mutate that single key atomically. The caller
// MUST call Unlock when done; no other writer on the same shard can
// proceed until then.
func (m *Map[V]) Entry(key string) *EntryHandle[V] {
	s := m.shardFor(key)
	s.mu.Lock()
	return &EntryHandle[V]{s: s, key: key}
}

// EntryHandle is a held shard write-lock scoped to one key.
type EntryHandle[V any] struct {
	s    *shard[V]
	key  string
	done bool
}

// Get returns the current value and whether the key is occupied.
func (e *EntryHandle[V]) Get() (V, bool) {
	v, ok := e.s.m[e.key]
	return v, ok
}

// Set stores v under the entry's key (vacant -> occupied, or replace).
func (e *EntryHandle[V]) Set(v V) { e.s.m[e.key] = v }

// Delete removes the entry's key if present.
func (e *EntryHandle[V]) Delete() { delete(e.s.m, e.key) }

// Unlock releases the shard write lock. Safe to call at most once;
// subsequent calls are no-ops.
func (e *EntryHandle[V]) Unlock() {
	if e.done {
		return
	}
	e.done = true
	e.s.mu.Unlock()
}

// ShardIndex returns the index of the shard key hashes to. It takes no
// lock; callers use it to group a batch of keys by shard before
// acquiring anything, so a multi-key operation can lock each shard at
// most once regardless of how many of its keys fall there.
func (m *Map[V]) ShardIndex(key string) int {
	h := hashString(key)
	return int((h >> m.shift) & m.mask)
}

// LockShard locks the shard key hashes to and returns a handle for
// operating on any key that also falls in that shard, not just key
// itself. The caller MUST call Unlock when done.
func (m *Map[V]) LockShard(key string) *ShardHandle[V] {
	s := m.shardFor(key)
	s.mu.Lock()
	return &ShardHandle[V]{s: s}
}

// ShardHandle is a held write lock over one entire shard.
type ShardHandle[V any] struct {
	s    *shard[V]
	done bool
}

// Get returns the current value for key and whether it is occupied.
// key must hash to the shard this handle holds.
func (h *ShardHandle[V]) Get(key string) (V, bool) {
	v, ok := h.s.m[key]
	return v, ok
}

// Set stores v under key (vacant -> occupied, or replace).
func (h *ShardHandle[V]) Set(key string, v V) { h.s.m[key] = v }

// Delete removes key if present.
func (h *ShardHandle[V]) Delete(key string) { delete(h.s.m, key) }

// Unlock releases the shard write lock. Safe to call at most once;
// subsequent calls are no-ops.
func (h *ShardHandle[V]) Unlock() {
	if h.done {
		return
	}
	h.done = true
	h.s.mu.Unlock()
}

// Range calls fn for every key/value pair, taking each shard's read
// lock in turn. Keys present continuously before and during Range are
// never skipped; keys inserted or removed during Range may or may not
// appear. Range stops early if fn returns
// false.
func (m *Map[V]) Range(fn func(key string, v V) bool) {
	for _, s := range m.shards {
		s.mu.RLock()
		cont := true
		for k, v := range s.m {
			if !fn(k, v) {
				cont = false
				break
			}
		}
		s.mu.RUnlock()
		if !cont {
			return
		}
	}
}

// Keys returns a snapshot of all keys currently present.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Range(func(k string, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}
