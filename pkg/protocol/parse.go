package protocol

import "github.com/skytable/skyd/pkg/model"

// Version selects which on-wire framing a listener speaks. A server is
// configured for exactly one at a time.
type Version int

const (
	SkyhashV1 Version = 1
	SkyhashV2 Version = 2
)

// Parse consumes a complete query from buf according to the given
// protocol version, returning the parsed Query and the number of bytes
// to advance the caller's read buffer by. On ErrNeedMore the caller
// must not advance its buffer and should retry once more bytes have
// arrived.
func Parse(buf []byte, v Version) (*Query, int, error) {
	switch v {
	case SkyhashV1:
		return parseQuery(buf, true)
	case SkyhashV2:
		return parseQuery(buf, false)
	default:
		return nil, 0, ErrBadPacket
	}
}

// parseQuery implements both protocol grammars; extraLF selects
// Skyhash 1's trailing-newline-per-element framing.
func parseQuery(buf []byte, extraLF bool) (*Query, int, error) {
	c := &cursor{buf: buf}

	tag, ok := c.peek()
	if !ok {
		return nil, 0, ErrNeedMore
	}

	switch tag {
	case '*':
		c.advance(1)
		n, err := c.readUint()
		if err != nil {
			return nil, 0, err
		}
		elems, err := c.readElements(n, extraLF)
		if err != nil {
			return nil, 0, err
		}
		return &Query{Kind: QuerySimple, Elements: elems}, c.pos, nil

	case '$':
		c.advance(1)
		m, err := c.readUint()
		if err != nil {
			return nil, 0, err
		}
		pipeline := make([][]model.Data, 0, m)
		for i := uint64(0); i < m; i++ {
			n, err := c.readUint()
			if err != nil {
				return nil, 0, err
			}
			elems, err := c.readElements(n, extraLF)
			if err != nil {
				return nil, 0, err
			}
			pipeline = append(pipeline, elems)
		}
		return &Query{Kind: QueryPipelined, Pipeline: pipeline}, c.pos, nil

	default:
		return nil, 0, ErrUnexpectedByte
	}
}
