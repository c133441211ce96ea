package persist

import (
	"encoding/binary"
)

// binWriter accumulates a file's byte payload in native order.
type binWriter struct {
	buf []byte
}

func (w *binWriter) u8(b byte) { w.buf = append(w.buf, b) }

func (w *binWriter) u64(v uint64) {
	var tmp [8]byte
	nativeOrder.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *binWriter) bytes(b []byte) { w.buf = append(w.buf, b...) }

// binReader walks a decoded file's bytes using the byte order recorded
// in its endian mark.
type binReader struct {
	buf   []byte
	pos   int
	order binary.ByteOrder
}

func (r *binReader) u8() (byte, error) {
	if len(r.buf)-r.pos < 1 {
		return 0, errTruncated
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *binReader) u64() (uint64, error) {
	if len(r.buf)-r.pos < 8 {
		return 0, errTruncated
	}
	v := r.order.Uint64(r.buf[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

func (r *binReader) bytes(n uint64) ([]byte, error) {
	if uint64(len(r.buf)-r.pos) < n {
		return nil, errTruncated
	}
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

func (r *binReader) done() bool { return r.pos >= len(r.buf) }
