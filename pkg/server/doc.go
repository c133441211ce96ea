// Package server accepts TCP connections, speaks one of the Skyhash
// protocol versions over them, and dispatches parsed queries into an
// engine.Engine. It owns the process-level concerns a listener needs:
// an admission gate bounded by maxcon, accept-error backoff, optional
// TLS, and a broadcast shutdown signal -- not query semantics, which
// live in pkg/engine.
package server
