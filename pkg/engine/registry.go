package engine

import (
	"sync"
	"sync/atomic"

	"github.com/skytable/skyd/pkg/auth"
	"github.com/skytable/skyd/pkg/log"
	"github.com/skytable/skyd/pkg/model"
	"github.com/skytable/skyd/pkg/persist"
)

// Registry is the object every connection's dispatch calls into: the
// live Memstore, the auth provider, and the global gating state.
type Registry struct {
	Memstore *model.Memstore
	Auth     *auth.Provider

	poisoned atomic.Bool
	flushMu  sync.Mutex

	// PreloadTrip is set by CREATE KEYSPACE and CREATE TABLE, telling
	// the next BGSAVE cycle to (re)create the directory tree before it
	// writes PRELOAD (which every cycle rewrites).
	PreloadTrip *persist.TripSwitch
	// CleanupTrip fires once a DROP has left orphaned files behind,
	// telling the background scheduler a cleanup pass is due.
	CleanupTrip *persist.TripSwitch

	// Snapshots is nil when snapshotting is disabled in configuration;
	// MKSNAP then returns snapshot-disabled instead of dispatching.
	Snapshots *persist.SnapshotScheduler
}

// NewRegistry wraps an already-recovered Memstore and auth Provider.
func NewRegistry(ms *model.Memstore, provider *auth.Provider) *Registry {
	return &Registry{
		Memstore:    ms,
		Auth:        provider,
		PreloadTrip: &persist.TripSwitch{},
		CleanupTrip: &persist.TripSwitch{},
	}
}

// StateOkay reports whether the store is clear to accept mutations.
func (r *Registry) StateOkay() bool { return !r.poisoned.Load() }

// Poison marks the store unable to accept mutating queries, set after
// a flush failure under failsafe policy.
func (r *Registry) Poison() {
	r.poisoned.Store(true)
	log.WithComponent("engine").Warn().Msg("store poisoned, mutating queries will be refused")
}

// Unpoison clears the poison flag; cmd/skyd calls it when a BGSAVE
// cycle succeeds after a failed one.
func (r *Registry) Unpoison() {
	r.poisoned.Store(false)
	log.WithComponent("engine").Info().Msg("store unpoisoned")
}

// LockFlush is held by a DDL handler for the duration of a structural
// change, so a concurrent flush cycle never observes a half-created
// keyspace or table.
func (r *Registry) LockFlush() { r.flushMu.Lock() }

// UnlockFlush releases the flush-state lock.
func (r *Registry) UnlockFlush() { r.flushMu.Unlock() }
