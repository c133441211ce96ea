package persist

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/skytable/skyd/pkg/auth"
	"github.com/skytable/skyd/pkg/model"
)

// Recover loads (or bootstraps) a Memstore and an auth Provider from
// root. If root's ks/ directory is empty or absent, a fresh tree is
// created with the default keyspace/table and PRELOAD/PARTMAP written
// immediately; otherwise the existing tree is read back in full.
func Recover(root, originKey string) (*model.Memstore, *auth.Provider, error) {
	layout := NewLayout(root)
	provider := auth.NewProvider(originKey)

	empty, err := dirEmptyOrAbsent(layout.KsDir())
	if err != nil {
		return nil, nil, fmt.Errorf("persist: stat ks dir: %w", err)
	}
	if empty {
		ms, err := model.NewMemstore()
		if err != nil {
			return nil, nil, err
		}
		fl := NewFlusher(root)
		if err := fl.Flush(ms, provider, true); err != nil {
			return nil, nil, fmt.Errorf("persist: bootstrap flush: %w", err)
		}
		return ms, provider, nil
	}

	raw, err := os.ReadFile(layout.PreloadPath())
	if err != nil {
		return nil, nil, fmt.Errorf("persist: read preload: %w", err)
	}
	if len(raw) < 1 {
		return nil, nil, malformed(layout.PreloadPath(), errTruncated)
	}
	order, err := orderForMark(raw[0])
	if err != nil {
		return nil, nil, malformed(layout.PreloadPath(), err)
	}

	ids, err := ReadPreload(layout.PreloadPath())
	if err != nil {
		return nil, nil, err
	}
	if !contains(ids, model.SystemKeyspace) {
		return nil, nil, malformed(layout.PreloadPath(), fmt.Errorf("missing system keyspace"))
	}

	ms := model.NewEmptyMemstore()
	for _, ksID := range ids {
		ks, err := recoverKeyspace(layout, ksID, order, provider)
		if err != nil {
			return nil, nil, err
		}
		ms.LoadKeyspace(ks)
	}

	return ms, provider, nil
}

func recoverKeyspace(layout *Layout, ksID string, order binary.ByteOrder, provider *auth.Provider) (*model.Keyspace, error) {
	entries, err := ReadPartmap(layout.PartmapPath(ksID), order)
	if err != nil {
		return nil, err
	}
	ks := model.NewKeyspace(ksID)
	for _, e := range entries {
		t, err := model.NewTable(e.ID, e.Model, e.Storage)
		if err != nil {
			return nil, malformed(layout.TablePath(ksID, e.ID), err)
		}
		if !e.Storage.IsVolatile() {
			path := layout.TablePath(ksID, e.ID)
			if kv, ok := t.KV(); ok {
				if err := ReadKVTable(path, order, kv); err != nil {
					return nil, err
				}
			} else if le, ok := t.List(); ok {
				if err := ReadListTable(path, order, le); err != nil {
					return nil, err
				}
			}
		}
		if err := ks.CreateTable(model.NewTableRef(t)); err != nil {
			return nil, malformed(layout.PartmapPath(ksID), err)
		}
	}
	if ksID == model.SystemKeyspace {
		authPath := layout.TablePath(ksID, "auth")
		if _, err := os.Stat(authPath); err == nil {
			if err := ReadAuthTable(authPath, order, provider); err != nil {
				return nil, err
			}
		}
	}
	return ks, nil
}

func dirEmptyOrAbsent(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
