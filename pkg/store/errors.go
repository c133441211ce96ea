package store

import "errors"

// ErrEncoding is returned when a write would place non-UTF-8 bytes into
// an encoded (key or value) slot. Reads are never affected by encoding
// flags.
var ErrEncoding = errors.New("encoding error")

// ErrOverwrite is returned by operations documented to fail rather than
// silently overwrite (LSET on an existing list, SSET when any key is
// already present). KVEngine.Set reports an existing key through its
// boolean result instead.
var ErrOverwrite = errors.New("overwrite error")

// ErrBadListIndex is returned by list operations addressing an
// out-of-range index.
var ErrBadListIndex = errors.New("bad list index")

// ErrListEmpty is returned by FIRST/LAST on a list that exists but has
// no elements.
var ErrListEmpty = errors.New("list is empty")
