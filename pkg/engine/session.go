package engine

import (
	"github.com/skytable/skyd/pkg/auth"
	"github.com/skytable/skyd/pkg/model"
)

// Session is a connection's mutable binding state: the currently bound
// keyspace and table, each held as an acquired reference handle for as
// long as it is current, plus the connection's auth state.
type Session struct {
	Auth auth.Session

	ksID string
	ks   *model.KeyspaceRef
	tbl  *model.TableRef
}

// NewSession binds a fresh connection to the default keyspace and its
// default table, matching the pre-connected state every client expects
// before its first USE.
func NewSession(reg *Registry) *Session {
	s := &Session{}
	def := reg.Memstore.Default()
	s.ks = def.Acquire()
	s.ksID = model.DefaultKeyspace
	if tref, ok := def.Keyspace.GetTable(model.DefaultTable); ok {
		s.tbl = tref.Acquire()
	}
	return s
}

// Close releases every handle the session currently holds. Called when
// a connection disconnects.
func (s *Session) Close() {
	s.clearTable()
	if s.ks != nil {
		s.ks.Release()
		s.ks = nil
	}
}

func (s *Session) clearTable() {
	if s.tbl != nil {
		s.tbl.Release()
		s.tbl = nil
	}
}

// useKeyspace rebinds the current keyspace, releasing both the old
// keyspace and table handles.
func (s *Session) useKeyspace(ref *model.KeyspaceRef, id string) {
	s.clearTable()
	if s.ks != nil {
		s.ks.Release()
	}
	s.ks = ref.Acquire()
	s.ksID = id
}

// useTable rebinds the current table within the current keyspace.
func (s *Session) useTable(ref *model.TableRef) {
	if s.tbl != nil {
		s.tbl.Release()
	}
	s.tbl = ref.Acquire()
}

// KeyspaceRef returns the currently bound keyspace handle, or nil if
// none is bound.
func (s *Session) KeyspaceRef() *model.KeyspaceRef { return s.ks }

// TableRef returns the currently bound table handle, or nil if none is
// bound.
func (s *Session) TableRef() *model.TableRef { return s.tbl }

// KeyspaceID returns the id of the currently bound keyspace, or "" if
// none is bound.
func (s *Session) KeyspaceID() string {
	if s.ks == nil {
		return ""
	}
	return s.ksID
}

// TableID returns the id of the currently bound table, or "" if none
// is bound.
func (s *Session) TableID() string {
	if s.tbl == nil {
		return ""
	}
	return s.tbl.Table.ID
}
