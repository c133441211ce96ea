/*
Package engine is the query dispatcher: it turns a parsed
protocol.Query into store mutations and a protocol.Encoder response.

A Registry is the object shared by every connection — the live
Memstore, the auth Provider, the poison flag and the flush-state lock
that serializes DDL against a running flush cycle. A Session is
per-connection: the currently bound keyspace/table (held as acquired
reference handles, released on rebind or Close) plus the connection's
auth state.

Dispatch is a flat map from the first query token (case-folded) to a
handler function, an apply-by-command-type switch keyed by verb instead
of a JSON command tag.
*/
package engine
