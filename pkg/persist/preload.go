package persist

import "os"

// WritePreload encodes the current set of keyspace ids to path: one
// endian-mark byte, then a native-endian u64 count, then for each id a
// u64 length followed by its bytes.
func WritePreload(path string, ids []string) error {
	w := &binWriter{}
	w.u8(nativeMark())
	w.u64(uint64(len(ids)))
	for _, id := range ids {
		w.u64(uint64(len(id)))
		w.bytes([]byte(id))
	}
	return writeAtomic(path, w.buf)
}

// ReadPreload decodes the keyspace id set from path, resolving the
// byte order to use from the file's own leading endian mark.
func ReadPreload(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < 1 {
		return nil, malformed(path, errTruncated)
	}
	order, err := orderForMark(raw[0])
	if err != nil {
		return nil, malformed(path, err)
	}
	r := &binReader{buf: raw[1:], order: order}

	count, err := r.u64()
	if err != nil {
		return nil, malformed(path, err)
	}
	ids := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		n, err := r.u64()
		if err != nil {
			return nil, malformed(path, err)
		}
		b, err := r.bytes(n)
		if err != nil {
			return nil, malformed(path, err)
		}
		ids = append(ids, string(b))
	}
	return ids, nil
}
