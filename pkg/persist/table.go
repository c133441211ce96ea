package persist

import (
	"encoding/binary"
	"os"

	"github.com/skytable/skyd/pkg/model"
	"github.com/skytable/skyd/pkg/store"
)

// WriteKVTable encodes a KV table's payload: a native-endian u64 count,
// then per entry a u64 key length, u64 value length, key bytes, value
// bytes.
func WriteKVTable(path string, kv *store.KVEngine) error {
	w := &binWriter{}
	w.u64(uint64(kv.Len()))
	kv.Range(func(k, v model.Data) bool {
		w.u64(uint64(k.Len()))
		w.u64(uint64(v.Len()))
		w.bytes(k.Bytes())
		w.bytes(v.Bytes())
		return true
	})
	return writeAtomic(path, w.buf)
}

// ReadKVTable decodes a KV table payload into kv, using order from the
// tree's PRELOAD mark. Entries are installed with LoadRaw, bypassing
// encoding validation (a payload written by this package is already
// known-valid for the table's encoding flags).
func ReadKVTable(path string, order binary.ByteOrder, kv *store.KVEngine) error {
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
		klen, err := r.u64()
		if err != nil {
			return malformed(path, err)
		}
		vlen, err := r.u64()
		if err != nil {
			return malformed(path, err)
		}
		kb, err := r.bytes(klen)
		if err != nil {
			return malformed(path, err)
		}
		vb, err := r.bytes(vlen)
		if err != nil {
			return malformed(path, err)
		}
		kv.LoadRaw(model.NewData(kb), model.NewData(vb))
	}
	return nil
}

// WriteListTable encodes a KV-list table's payload: a native-endian
// u64 count, then per key a u64 key length, key bytes, a nested u64
// list length, and that many (u64 len, bytes) elements.
func WriteListTable(path string, le *store.ListEngine) error {
	w := &binWriter{}
	w.u64(uint64(le.Len()))
	le.Range(func(key model.Data, values []model.Data) bool {
		w.u64(uint64(key.Len()))
		w.bytes(key.Bytes())
		w.u64(uint64(len(values)))
		for _, v := range values {
			w.u64(uint64(v.Len()))
			w.bytes(v.Bytes())
		}
		return true
	})
	return writeAtomic(path, w.buf)
}

// ReadListTable decodes a KV-list table payload into le.
func ReadListTable(path string, order binary.ByteOrder, le *store.ListEngine) error {
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
		klen, err := r.u64()
		if err != nil {
			return malformed(path, err)
		}
		kb, err := r.bytes(klen)
		if err != nil {
			return malformed(path, err)
		}
		listLen, err := r.u64()
		if err != nil {
			return malformed(path, err)
		}
		values := make([]model.Data, 0, listLen)
		for j := uint64(0); j < listLen; j++ {
			elen, err := r.u64()
			if err != nil {
				return malformed(path, err)
			}
			eb, err := r.bytes(elen)
			if err != nil {
				return malformed(path, err)
			}
			values = append(values, model.NewData(eb))
		}
		le.LoadList(model.NewData(kb), values)
	}
	return nil
}
