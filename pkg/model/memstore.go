package model

import (
	"fmt"

	"github.com/skytable/skyd/pkg/containers"
)

// Memstore is the top-level namespace: keyspace-id -> Keyspace, plus
// the distinguished system keyspace.
type Memstore struct {
	keyspaces *containers.Map[*KeyspaceRef]
}

// NewMemstore constructs a fresh Memstore with the two keyspaces that
// must always exist: "default" (holding the "default" table, model
// code 0) and "system" (created with no tables; the auth user table is
// held by auth.Provider and the flusher writes it under system/).
func NewMemstore() (*Memstore, error) {
	ms := &Memstore{keyspaces: containers.NewMapShards[*KeyspaceRef](4)}

	def := NewKeyspace(DefaultKeyspace)
	defTable, err := NewTable(DefaultTable, MC_KV_NN, StoragePersistent)
	if err != nil {
		return nil, err
	}
	if err := def.CreateTable(NewTableRef(defTable)); err != nil {
		return nil, err
	}
	ms.keyspaces.Upsert(DefaultKeyspace, NewKeyspaceRef(def))

	sys := NewKeyspace(SystemKeyspace)
	ms.keyspaces.Upsert(SystemKeyspace, NewKeyspaceRef(sys))

	return ms, nil
}

// NewEmptyMemstore constructs a Memstore with no keyspaces at all, for
// callers that are about to populate it from an on-disk load rather
// than from the default bootstrap. The caller is responsible for
// installing "system" and "default" via LoadKeyspace before the store
// is used.
func NewEmptyMemstore() *Memstore {
	return &Memstore{keyspaces: containers.NewMapShards[*KeyspaceRef](4)}
}

// LoadKeyspace installs ks directly, overwriting any existing entry
// for the same id. Used only while reconstructing a Memstore from disk.
func (m *Memstore) LoadKeyspace(ks *Keyspace) {
	m.keyspaces.Upsert(ks.ID, NewKeyspaceRef(ks))
}

// GetKeyspace returns the keyspace ref for id, or ok=false.
func (m *Memstore) GetKeyspace(id string) (*KeyspaceRef, bool) {
	return m.keyspaces.Get(id)
}

// CreateKeyspace inserts a new empty keyspace, failing with
// ErrAlreadyExists if id is taken.
func (m *Memstore) CreateKeyspace(id string) error {
	ks := NewKeyspace(id)
	if !m.keyspaces.Insert(id, NewKeyspaceRef(ks)) {
		return fmt.Errorf("%w: keyspace %q", ErrAlreadyExists, id)
	}
	return nil
}

// DropKeyspace removes keyspace id. "system" and "default" can never
// be dropped. Without force, the keyspace must be
// empty and unreferenced; with force, every table inside must be
// unreferenced (the keyspace handle itself still must be unreferenced
// either way) and is then dropped along with its tables.
func (m *Memstore) DropKeyspace(id string, force bool) error {
	if id == SystemKeyspace || id == DefaultKeyspace {
		return ErrProtectedObject
	}
	ref, ok := m.keyspaces.Get(id)
	if !ok {
		return fmt.Errorf("%w: keyspace %q", ErrContainerNotFound, id)
	}
	if !ref.SoleHolder() {
		return ErrStillInUse
	}
	if !force {
		if ref.Keyspace.Len() != 0 {
			return ErrKeyspaceNotEmpty
		}
	} else {
		inUse := false
		ref.Keyspace.Range(func(_ string, tref *TableRef) bool {
			if !tref.SoleHolder() {
				inUse = true
				return false
			}
			return true
		})
		if inUse {
			return ErrStillInUse
		}
	}
	m.keyspaces.Remove(id)
	return nil
}

// KeyspaceIDs returns a snapshot of every keyspace id, for INSPECT
// KEYSPACES.
func (m *Memstore) KeyspaceIDs() []string {
	return m.keyspaces.Keys()
}

// Range calls fn for every (id, *KeyspaceRef) pair; used by flush to
// walk the whole tree.
func (m *Memstore) Range(fn func(id string, ref *KeyspaceRef) bool) {
	m.keyspaces.Range(fn)
}

// System returns the system keyspace ref. It always exists.
func (m *Memstore) System() *KeyspaceRef {
	ref, _ := m.keyspaces.Get(SystemKeyspace)
	return ref
}

// Default returns the default keyspace ref. It always exists.
func (m *Memstore) Default() *KeyspaceRef {
	ref, _ := m.keyspaces.Get(DefaultKeyspace)
	return ref
}
