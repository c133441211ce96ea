/*
Package store implements the two data-model engines a Table can hold:
KVEngine (blob key/value) and ListEngine (key -> ordered list of
blobs).

Both engines validate the table's encoding flags (key-encoded,
value-encoded — "encoded" means "must be valid UTF-8") before any
mutation; a violation returns ErrEncoding and leaves the engine
untouched. Batch operations (MGET/MSET/MUPDATE/USET/MPOP/DEL) validate
every element before mutating any of them. The "strong" operations
(SSET/SUPDATE/SDEL) snapshot the affected keys' current values, verify
a precondition against that snapshot, and apply the mutation only if
every key still matches — otherwise nothing is mutated.

A CRUD-per-entity Store interface shape, with a
marshal-validate-mutate ordering, retargeted from a BoltDB-style
bucket model onto pkg/containers shards.
*/
package store
