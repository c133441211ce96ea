package model

import "sync/atomic"

// TableRef is a reference-counted handle to a Table. The store
// itself holds the initial reference (count 1); every connection that
// binds its current entity to this table acquires another reference
// and releases it when the binding changes or the connection closes.
// DROP TABLE succeeds only when the store is the sole holder, i.e.
// refs == 1 at the moment of the drop attempt.
type TableRef struct {
	Table *Table
	refs  atomic.Int32
}

// NewTableRef wraps t with an initial refcount of 1 (the store's own
// hold).
func NewTableRef(t *Table) *TableRef {
	r := &TableRef{Table: t}
	r.refs.Store(1)
	return r
}

// Acquire increments the refcount and returns the same handle, for a
// connection binding its current entity state to this table.
func (r *TableRef) Acquire() *TableRef {
	r.refs.Add(1)
	return r
}

// Release decrements the refcount. Connections call this when
// rebinding away from this table (USE) or on disconnect.
func (r *TableRef) Release() {
	r.refs.Add(-1)
}

// SoleHolder reports whether the store is the only holder remaining,
// the defined way to detect "still in use".
func (r *TableRef) SoleHolder() bool {
	return r.refs.Load() == 1
}

// KeyspaceRef is the analogous reference-counted handle for a
// Keyspace.
type KeyspaceRef struct {
	Keyspace *Keyspace
	refs     atomic.Int32
}

// NewKeyspaceRef wraps ks with an initial refcount of 1.
func NewKeyspaceRef(ks *Keyspace) *KeyspaceRef {
	r := &KeyspaceRef{Keyspace: ks}
	r.refs.Store(1)
	return r
}

// Acquire increments the refcount and returns the same handle.
func (r *KeyspaceRef) Acquire() *KeyspaceRef {
	r.refs.Add(1)
	return r
}

// Release decrements the refcount.
func (r *KeyspaceRef) Release() {
	r.refs.Add(-1)
}

// SoleHolder reports whether the store is the only holder remaining,
// the defined way to detect "still in use".
func (r *KeyspaceRef) SoleHolder() bool {
	return r.refs.Load() == 1
}
