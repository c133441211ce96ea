package protocol

import (
	"bytes"
	"strconv"
)

// Encoder builds one protocol response, framing every unit according
// to the selected Version: Skyhash 2 frames a payload as
// "<sym><len>\n<body>"; Skyhash 1 additionally appends one trailing LF
// after the body on every element and response.
type Encoder struct {
	v   Version
	buf bytes.Buffer
}

// NewEncoder constructs an Encoder for the given protocol version.
func NewEncoder(v Version) *Encoder { return &Encoder{v: v} }

// Bytes returns the accumulated response bytes.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

func (e *Encoder) writeFramed(sym byte, body []byte) {
	e.buf.WriteByte(sym)
	e.buf.WriteString(strconv.Itoa(len(body)))
	e.buf.WriteByte('\n')
	e.buf.Write(body)
	if e.v == SkyhashV1 {
		e.buf.WriteByte('\n')
	}
}

// writeHeader writes a count-only header (used for the four array
// tsymbols): "<sym><count>\n", with Skyhash 1's usual extra trailing LF.
func (e *Encoder) writeHeader(sym byte, count int) {
	e.buf.WriteByte(sym)
	e.buf.WriteString(strconv.Itoa(count))
	e.buf.WriteByte('\n')
	if e.v == SkyhashV1 {
		e.buf.WriteByte('\n')
	}
}

// Code writes a response-code frame under the '!' tsymbol.
func (e *Encoder) Code(c ResponseCode) { e.writeFramed('!', c.Bytes()) }

// Str writes a UTF-8 string reply under the '+' tsymbol.
func (e *Encoder) Str(s string) { e.writeFramed('+', []byte(s)) }

// Binary writes an arbitrary-bytes reply under the '?' tsymbol.
func (e *Encoder) Binary(b []byte) { e.writeFramed('?', b) }

// Float writes a float64 reply under the '%' tsymbol.
func (e *Encoder) Float(f float64) {
	e.writeFramed('%', []byte(strconv.FormatFloat(f, 'f', -1, 64)))
}

// Int writes an int64 reply under the ':' tsymbol.
func (e *Encoder) Int(i int64) { e.writeFramed(':', []byte(strconv.FormatInt(i, 10))) }

// TypedArrayHeader opens a typed array ('@') of n elements; callers
// write each element with the matching typed method next.
func (e *Encoder) TypedArrayHeader(n int) { e.writeHeader('@', n) }

// TypedNonNullArrayHeader opens a typed non-null array ('^') of n
// elements.
func (e *Encoder) TypedNonNullArrayHeader(n int) { e.writeHeader('^', n) }

// ArrayHeader opens a generic array ('&') of n elements, each of which
// may itself be any response kind.
func (e *Encoder) ArrayHeader(n int) { e.writeHeader('&', n) }

// FlatArrayHeader opens a flat array ('_') of n string elements.
func (e *Encoder) FlatArrayHeader(n int) { e.writeHeader('_', n) }

// StrArray is a convenience for the common "flat array of strings"
// shape used by INSPECT and WHEREAMI.
func (e *Encoder) StrArray(items []string) {
	e.FlatArrayHeader(len(items))
	for _, s := range items {
		e.Str(s)
	}
}
