package persist

import (
	"encoding/binary"
	"os"

	"github.com/skytable/skyd/pkg/model"
)

// PartEntry is one PARTMAP row: a table id plus the storage/model
// codes needed to reconstruct its engine before its payload is read.
type PartEntry struct {
	ID      string
	Storage model.StorageCode
	Model   model.ModelCode
}

// WritePartmap encodes a keyspace's table directory: a native-endian
// u64 count, then per entry a u64 id length, the id bytes, one storage
// code byte and one model code byte. PARTMAP files don't carry their
// own endian mark -- they're always read using the order recorded in
// the tree's PRELOAD, which is read first.
func WritePartmap(path string, entries []PartEntry) error {
	w := &binWriter{}
	w.u64(uint64(len(entries)))
	for _, e := range entries {
		w.u64(uint64(len(e.ID)))
		w.bytes([]byte(e.ID))
		w.u8(byte(e.Storage))
		w.u8(byte(e.Model))
	}
	return writeAtomic(path, w.buf)
}

// ReadPartmap decodes a PARTMAP file using order (resolved from the
// tree's PRELOAD mark).
func ReadPartmap(path string, order binary.ByteOrder) ([]PartEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := &binReader{buf: raw, order: order}
	count, err := r.u64()
	if err != nil {
		return nil, malformed(path, err)
	}
	entries := make([]PartEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		n, err := r.u64()
		if err != nil {
			return nil, malformed(path, err)
		}
		idBytes, err := r.bytes(n)
		if err != nil {
			return nil, malformed(path, err)
		}
		storage, err := r.u8()
		if err != nil {
			return nil, malformed(path, err)
		}
		mc, err := r.u8()
		if err != nil {
			return nil, malformed(path, err)
		}
		entries = append(entries, PartEntry{
			ID:      string(idBytes),
			Storage: model.StorageCode(storage),
			Model:   model.ModelCode(mc),
		})
	}
	return entries, nil
}
