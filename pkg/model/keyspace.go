package model

import (
	"fmt"

	"github.com/skytable/skyd/pkg/containers"
)

// Keyspace is a named container of tables. NewKeyspace constructs it
// with no tables; callers (Memstore) are responsible for seeding the
// default table into the default keyspace.
type Keyspace struct {
	ID     string
	tables *containers.Map[*TableRef]
}

// NewKeyspace constructs an empty keyspace with the given id.
func NewKeyspace(id string) *Keyspace {
	return &Keyspace{ID: id, tables: containers.NewMapShards[*TableRef](8)}
}

// CreateTable inserts a new table, failing with ErrAlreadyExists if the
// id is already bound.
func (k *Keyspace) CreateTable(ref *TableRef) error {
	if !k.tables.Insert(ref.Table.ID, ref) {
		return fmt.Errorf("%w: table %q", ErrAlreadyExists, ref.Table.ID)
	}
	return nil
}

// GetTable returns the table ref for id, or ok=false.
func (k *Keyspace) GetTable(id string) (*TableRef, bool) {
	return k.tables.Get(id)
}

// DropTable removes table id if it exists and is not in use (sole
// holder is the store itself). Returns ErrContainerNotFound,
// ErrStillInUse, ErrProtectedObject (the default keyspace's default
// table always exists and cannot be dropped), or nil.
func (k *Keyspace) DropTable(id string) error {
	if k.ID == DefaultKeyspace && id == DefaultTable {
		return fmt.Errorf("%w: table %q", ErrProtectedObject, id)
	}
	ref, ok := k.tables.Get(id)
	if !ok {
		return fmt.Errorf("%w: table %q", ErrContainerNotFound, id)
	}
	if !ref.SoleHolder() {
		return ErrStillInUse
	}
	k.tables.Remove(id)
	return nil
}

// TableIDs returns a snapshot of every table id in the keyspace, for
// INSPECT KEYSPACE.
func (k *Keyspace) TableIDs() []string {
	return k.tables.Keys()
}

// Len reports the number of tables in the keyspace, used by the
// "empty" half of the keyspace-drop precondition.
func (k *Keyspace) Len() int { return k.tables.Len() }

// Range calls fn for every (id, *TableRef) pair; used by flush to walk
// every table in the keyspace.
func (k *Keyspace) Range(fn func(id string, ref *TableRef) bool) {
	k.tables.Range(fn)
}
