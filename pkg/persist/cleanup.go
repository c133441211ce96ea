package persist

import (
	"os"

	"github.com/skytable/skyd/pkg/model"
)

// Cleanup removes keyspace/table files present on disk but absent from
// ms, run after a successful flush cycle when the cleanup trip switch
// fires. PRELOAD and PARTMAP files are always preserved.
func Cleanup(root string, ms *model.Memstore) error {
	layout := NewLayout(root)

	diskKeyspaces, err := os.ReadDir(layout.KsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	live := make(map[string]bool)
	for _, id := range ms.KeyspaceIDs() {
		live[id] = true
	}

	for _, entry := range diskKeyspaces {
		if !entry.IsDir() {
			continue
		}
		ksID := entry.Name()
		if !live[ksID] {
			if err := os.RemoveAll(layout.KeyspaceDir(ksID)); err != nil {
				return err
			}
			continue
		}
		if err := cleanupTables(layout, ksID, ms); err != nil {
			return err
		}
	}
	return nil
}

func cleanupTables(layout *Layout, ksID string, ms *model.Memstore) error {
	ref, ok := ms.GetKeyspace(ksID)
	if !ok {
		return nil
	}
	liveTables := make(map[string]bool)
	for _, id := range ref.Keyspace.TableIDs() {
		liveTables[id] = true
	}
	if ksID == model.SystemKeyspace {
		liveTables["auth"] = true
	}

	entries, err := os.ReadDir(layout.KeyspaceDir(ksID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if name == partmapName {
			continue
		}
		if !liveTables[name] {
			if err := os.Remove(layout.TablePath(ksID, name)); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	}
	return nil
}
