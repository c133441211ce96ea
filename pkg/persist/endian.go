package persist

import "encoding/binary"

// The two endian marks a PRELOAD file's first byte may hold, recording
// which byte order the rest of that load (and everything read from the
// same directory tree afterward) was written in.
const (
	markLittleEndian byte = 0x80
	markBigEndian    byte = 0x81
)

// nativeOrder is the host's native byte order, used whenever this
// process writes a new file.
var nativeOrder = detectNativeOrder()

func detectNativeOrder() binary.ByteOrder {
	buf := make([]byte, 2)
	binary.NativeEndian.PutUint16(buf, 0x0102)
	if buf[0] == 0x02 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// nativeMark reports the endian mark this process writes.
func nativeMark() byte {
	if nativeOrder == binary.LittleEndian {
		return markLittleEndian
	}
	return markBigEndian
}

// orderForMark resolves the byte order a reader must use given the
// mark byte stored at the head of a PRELOAD file.
func orderForMark(mark byte) (binary.ByteOrder, error) {
	switch mark {
	case markLittleEndian:
		return binary.LittleEndian, nil
	case markBigEndian:
		return binary.BigEndian, nil
	default:
		return nil, ErrBadEndianMark
	}
}
