package model

import (
	"fmt"

	"github.com/skytable/skyd/pkg/store"
)

// Table is a typed mapping belonging to a keyspace: either a KV blob
// table or a KV-list table, chosen by ModelCode (immutable for the
// table's lifetime).
type Table struct {
	ID      string
	Model   ModelCode
	Storage StorageCode

	kv   *store.KVEngine
	list *store.ListEngine
}

// NewTable constructs an empty Table for the given model/storage code.
func NewTable(id string, mc ModelCode, sc StorageCode) (*Table, error) {
	m, kEnc, vEnc, ok := mc.Describe()
	if !ok {
		return nil, fmt.Errorf("unknown model: code=%d", mc)
	}
	t := &Table{ID: id, Model: mc, Storage: sc}
	switch m {
	case ModelKV:
		t.kv = store.NewKVEngine(kEnc, vEnc)
	case ModelKVList:
		t.list = store.NewListEngine(kEnc, vEnc)
	default:
		return nil, fmt.Errorf("unknown model: %v", m)
	}
	return t, nil
}

// IsKVList reports whether this table holds the KV-list model.
func (t *Table) IsKVList() bool { return t.list != nil }

// KV returns the KV engine and true, or (nil, false) for a KV-list
// table. Callers dispatching KV-only verbs use this to produce a
// wrong-model error.
func (t *Table) KV() (*store.KVEngine, bool) {
	if t.kv == nil {
		return nil, false
	}
	return t.kv, true
}

// List returns the list engine and true, or (nil, false) for a KV
// table.
func (t *Table) List() (*store.ListEngine, bool) {
	if t.list == nil {
		return nil, false
	}
	return t.list, true
}

// Len reports the element count of whichever engine this table holds,
// for DBSIZE.
func (t *Table) Len() int {
	if t.kv != nil {
		return t.kv.Len()
	}
	return t.list.Len()
}
