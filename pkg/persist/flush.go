package persist

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/skytable/skyd/pkg/auth"
	"github.com/skytable/skyd/pkg/model"
)

// Target selects which directory tree a flush writes to, and whether
// it must (re)create that tree unconditionally.
type Target int

const (
	// Autoflush writes the live data/ tree; it only (re)creates the
	// directory structure when the preload trip switch is set; the
	// BGSAVE cycle consumes that switch before flushing, whether or not
	// the flush then succeeds.
	Autoflush Target = iota
	// LocalSnapshot always recreates its directory tree (a fresh
	// snaps/<name>/ directory) and never touches the preload switch.
	LocalSnapshot
	// RemoteSnapshot is the same as LocalSnapshot but rooted at
	// rsnap/<name>/, keyed by a caller-supplied name rather than a
	// timestamp.
	RemoteSnapshot
)

// Flusher runs the full flush procedure against a Memstore and an auth
// Provider, writing PRELOAD/PARTMAP/table payloads for every
// non-volatile table.
type Flusher struct {
	root string
}

// NewFlusher constructs a Flusher rooted at root (a fresh directory for
// LocalSnapshot/RemoteSnapshot targets, the live data directory for
// Autoflush).
func NewFlusher(root string) *Flusher { return &Flusher{root: root} }

// Flush writes PRELOAD, then every keyspace's PARTMAP and every
// non-volatile table's payload; the system keyspace's pass also writes
// the auth table. mustInit
// forces directory (re)creation even when there's no trip pending --
// true for every snapshot target, conditional for Autoflush.
func (fl *Flusher) Flush(ms *model.Memstore, provider *auth.Provider, mustInit bool) error {
	layout := NewLayout(fl.root)

	if mustInit {
		if err := os.MkdirAll(layout.KsDir(), 0o755); err != nil {
			return fmt.Errorf("persist: create ks dir: %w", err)
		}
	}

	ids := ms.KeyspaceIDs()
	if err := WritePreload(layout.PreloadPath(), ids); err != nil {
		return fmt.Errorf("persist: write preload: %w", err)
	}

	var flushErr error
	ms.Range(func(ksID string, ksRef *model.KeyspaceRef) bool {
		if err := fl.flushKeyspace(layout, ksID, ksRef.Keyspace, provider); err != nil {
			flushErr = err
			return false
		}
		return true
	})
	return flushErr
}

func (fl *Flusher) flushKeyspace(layout *Layout, ksID string, ks *model.Keyspace, provider *auth.Provider) error {
	dir := layout.KeyspaceDir(ksID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: create keyspace dir %s: %w", ksID, err)
	}

	entries := make([]PartEntry, 0, ks.Len())
	ks.Range(func(tblID string, tref *model.TableRef) bool {
		entries = append(entries, PartEntry{
			ID:      tblID,
			Storage: tref.Table.Storage,
			Model:   tref.Table.Model,
		})
		return true
	})

	if err := WritePartmap(layout.PartmapPath(ksID), entries); err != nil {
		return fmt.Errorf("persist: write partmap for %s: %w", ksID, err)
	}

	for _, e := range entries {
		if e.Storage.IsVolatile() {
			continue
		}
		tref, ok := ks.GetTable(e.ID)
		if !ok {
			continue
		}
		path := layout.TablePath(ksID, e.ID)
		if err := writeTablePayload(path, tref.Table); err != nil {
			return fmt.Errorf("persist: write table %s/%s: %w", ksID, e.ID, err)
		}
	}

	if ksID == model.SystemKeyspace && provider != nil {
		if err := writeAuthTable(layout.TablePath(ksID, "auth"), provider); err != nil {
			return fmt.Errorf("persist: write auth table: %w", err)
		}
	}
	return nil
}

func writeTablePayload(path string, t *model.Table) error {
	if kv, ok := t.KV(); ok {
		return WriteKVTable(path, kv)
	}
	le, _ := t.List()
	return WriteListTable(path, le)
}

// writeAuthTable serializes the user table as a plain KV map of id ->
// hashed token, using the same table-payload codec as any other KV
// table.
func writeAuthTable(path string, provider *auth.Provider) error {
	exported := provider.Export()
	w := &binWriter{}
	w.u64(uint64(len(exported)))
	for id, hashed := range exported {
		w.u64(uint64(len(id)))
		w.u64(uint64(len(hashed)))
		w.bytes([]byte(id))
		w.bytes(hashed)
	}
	return writeAtomic(path, w.buf)
}

// ReadAuthTable decodes an auth table payload written by writeAuthTable
// and loads every entry into provider.
func ReadAuthTable(path string, order binary.ByteOrder, provider *auth.Provider) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	r := &binReader{buf: raw, order: order}
	count, err := r.u64()
	if err != nil {
		return malformed(path, err)
	}
	for i := uint64(0); i < count; i++ {
		idLen, err := r.u64()
		if err != nil {
			return malformed(path, err)
		}
		hashLen, err := r.u64()
		if err != nil {
			return malformed(path, err)
		}
		idBytes, err := r.bytes(idLen)
		if err != nil {
			return malformed(path, err)
		}
		hashBytes, err := r.bytes(hashLen)
		if err != nil {
			return malformed(path, err)
		}
		provider.LoadUser(string(idBytes), append([]byte(nil), hashBytes...))
	}
	return nil
}
