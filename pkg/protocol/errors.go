package protocol

import "errors"

// Parse errors. A parse either consumes exactly one
// complete query and reports the byte count, or returns one of these
// (implementations must not retain references
// into the input buffer after reporting need-more — every parse here
// starts fresh from offset 0 of whatever buffer the caller has
// accumulated so far).
var (
	// ErrNeedMore means the buffer does not yet hold a complete query;
	// the caller must read more bytes and retry the parse from scratch.
	ErrNeedMore = errors.New("need more")
	// ErrBadPacket means the buffer holds bytes that can never form a
	// valid query (a Skyhash 1 element not followed by its extra LF, or
	// an unknown protocol version).
	ErrBadPacket = errors.New("bad packet")
	// ErrUnexpectedByte means a byte was encountered where the grammar
	// requires a specific tag byte (e.g. the leading '*' or '$').
	ErrUnexpectedByte = errors.New("unexpected byte")
	// ErrWrongType is reserved for typed-response decoding contexts;
	// request parsing does not produce it today.
	ErrWrongType = errors.New("wrong type")
	// ErrDatatypeParse means a length or count field's ASCII digits did
	// not parse as a valid non-negative integer.
	ErrDatatypeParse = errors.New("datatype parse failure")
)
