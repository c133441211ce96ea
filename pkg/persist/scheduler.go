package persist

import (
	"sync/atomic"
	"time"

	"github.com/skytable/skyd/pkg/auth"
	"github.com/skytable/skyd/pkg/log"
	"github.com/skytable/skyd/pkg/model"
)

// BGSaveScheduler runs Flush against the live tree on a fixed interval,
// on its own goroutine, following a ticker-plus-stop-channel shape.
type BGSaveScheduler struct {
	root     string
	flusher  *Flusher
	ms       *model.Memstore
	provider *auth.Provider
	interval time.Duration
	failsafe bool

	poison      atomic.Bool
	trip        *TripSwitch
	cleanupTrip *TripSwitch
	onPoison    func(bool)

	stopCh chan struct{}
	doneCh chan struct{}
}

// OnPoisonChange registers fn to be called whenever a flush cycle's
// poison outcome changes, so a caller (the query engine's Registry)
// can gate mutating queries off the same state this scheduler tracks
// internally.
func (s *BGSaveScheduler) OnPoisonChange(fn func(bool)) { s.onPoison = fn }

// NewBGSaveScheduler constructs a scheduler for the given interval.
// When failsafe is true, a failed flush cycle sets the poison flag;
// a successful cycle afterward clears it again (see runCycle).
func NewBGSaveScheduler(root string, ms *model.Memstore, provider *auth.Provider, interval time.Duration, failsafe bool, preloadTrip *TripSwitch) *BGSaveScheduler {
	return &BGSaveScheduler{
		root:     root,
		flusher:  NewFlusher(root),
		ms:       ms,
		provider: provider,
		interval: interval,
		failsafe: failsafe,
		trip:     preloadTrip,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// OnCleanup arms the scheduler to fire the given cleanup trip switch
// check after every successful flush cycle: when the switch was armed
// (by a DROP TABLE/DROP KEYSPACE since the last cycle), orphaned
// keyspace/table files are removed from disk.
func (s *BGSaveScheduler) OnCleanup(trip *TripSwitch) { s.cleanupTrip = trip }

// Poisoned reports whether the last flush cycle failed under failsafe.
func (s *BGSaveScheduler) Poisoned() bool { return s.poison.Load() }

// ClearPoison resets the poison flag.
func (s *BGSaveScheduler) ClearPoison() { s.poison.Store(false) }

// Start launches the background loop.
func (s *BGSaveScheduler) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer close(s.doneCh)
		for {
			select {
			case <-ticker.C:
				s.runCycle()
			case <-s.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop signals the loop to exit and waits for it to finish.
func (s *BGSaveScheduler) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *BGSaveScheduler) runCycle() {
	mustInit := s.trip != nil && s.trip.Fire()
	if err := s.flusher.Flush(s.ms, s.provider, mustInit); err != nil {
		log.WithComponent("persist").Error().Err(err).Msg("bgsave cycle failed")
		if s.failsafe {
			s.poison.Store(true)
			if s.onPoison != nil {
				s.onPoison(true)
			}
		}
		return
	}
	if s.poison.Swap(false) && s.onPoison != nil {
		s.onPoison(false)
	}
	if s.cleanupTrip != nil && s.cleanupTrip.Fire() {
		if err := Cleanup(s.root, s.ms); err != nil {
			log.WithComponent("persist").Error().Err(err).Msg("post-flush cleanup failed")
		}
	}
}

// TripSwitch is a one-shot atomic flag: Fire reports true exactly once
// per Set, then reverts to false until Set again. Used for the preload
// and cleanup trip switches.
type TripSwitch struct {
	set atomic.Bool
}

// Set arms the switch.
func (t *TripSwitch) Set() { t.set.Store(true) }

// Fire reports whether the switch was armed, consuming the arm state.
func (t *TripSwitch) Fire() bool { return t.set.CompareAndSwap(true, false) }
