package model

import "bytes"

// Data is an immutable, cheaply cloneable byte buffer used as both key
// and value throughout the store. The zero value is an empty buffer.
type Data struct {
	b []byte
}

// NewData copies b into a new Data buffer. The caller's slice is never
// retained.
func NewData(b []byte) Data {
	if len(b) == 0 {
		return Data{}
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return Data{b: cp}
}

// NewDataFromString copies s into a new Data buffer.
func NewDataFromString(s string) Data {
	return NewData([]byte(s))
}

// Bytes returns the underlying bytes. Callers must not mutate the
// returned slice.
func (d Data) Bytes() []byte { return d.b }

// String renders the buffer as a string, valid or not.
func (d Data) String() string { return string(d.b) }

// Len returns the number of bytes in the buffer.
func (d Data) Len() int { return len(d.b) }

// Clone returns an independent copy of the buffer.
func (d Data) Clone() Data { return NewData(d.b) }

// Equal reports whether two buffers hold identical bytes.
func (d Data) Equal(o Data) bool {
	return bytes.Equal(d.b, o.b)
}
