package protocol

import "github.com/skytable/skyd/pkg/model"

// cursor walks an input buffer without retaining any reference into it
// beyond the lifetime of a single Parse call.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) remaining() int { return len(c.buf) - c.pos }

func (c *cursor) peek() (byte, bool) {
	if c.remaining() < 1 {
		return 0, false
	}
	return c.buf[c.pos], true
}

func (c *cursor) advance(n int) { c.pos += n }

// expectByte consumes exactly one tag byte, expecting it to be
// `want`. Returns ErrNeedMore if the buffer is exhausted, or
// ErrUnexpectedByte if the byte doesn't match.
func (c *cursor) expectByte(want byte) error {
	b, ok := c.peek()
	if !ok {
		return ErrNeedMore
	}
	if b != want {
		return ErrUnexpectedByte
	}
	c.advance(1)
	return nil
}

// readLine returns the bytes up to (not including) the next '\n', and
// advances past the '\n'. Returns ErrNeedMore if no '\n' is present yet.
func (c *cursor) readLine() ([]byte, error) {
	idx := -1
	for i := c.pos; i < len(c.buf); i++ {
		if c.buf[i] == '\n' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNeedMore
	}
	line := c.buf[c.pos:idx]
	c.advance(idx - c.pos + 1)
	return line, nil
}

// readUint parses an ASCII non-negative integer terminated by '\n'.
func (c *cursor) readUint() (uint64, error) {
	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	if len(line) == 0 {
		return 0, ErrDatatypeParse
	}
	var n uint64
	for _, b := range line {
		if b < '0' || b > '9' {
			return 0, ErrDatatypeParse
		}
		n = n*10 + uint64(b-'0')
	}
	return n, nil
}

// readExact consumes exactly n bytes, returning ErrNeedMore if the
// buffer doesn't yet hold that many.
func (c *cursor) readExact(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, ErrNeedMore
	}
	b := c.buf[c.pos : c.pos+n]
	c.advance(n)
	return b, nil
}

// readElement reads one "<len>\n<bytes>" element, plus an extra
// trailing '\n' when extraLF is set (Skyhash 1's framing).
func (c *cursor) readElement(extraLF bool) (model.Data, error) {
	n, err := c.readUint()
	if err != nil {
		return model.Data{}, err
	}
	b, err := c.readExact(int(n))
	if err != nil {
		return model.Data{}, err
	}
	d := model.NewData(b)
	if extraLF {
		if err := c.expectByte('\n'); err != nil {
			if err == ErrUnexpectedByte {
				return model.Data{}, ErrBadPacket
			}
			return model.Data{}, err
		}
	}
	return d, nil
}

// readElements reads count elements in sequence.
func (c *cursor) readElements(count uint64, extraLF bool) ([]model.Data, error) {
	elems := make([]model.Data, 0, count)
	for i := uint64(0); i < count; i++ {
		d, err := c.readElement(extraLF)
		if err != nil {
			return nil, err
		}
		elems = append(elems, d)
	}
	return elems, nil
}
