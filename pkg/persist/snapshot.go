package persist

import (
	"os"
	"sync"
	"time"

	"github.com/skytable/skyd/pkg/auth"
	"github.com/skytable/skyd/pkg/log"
	"github.com/skytable/skyd/pkg/model"
)

// SnapshotScheduler creates timestamped local snapshots on a fixed
// interval and retains at most `atmost` of them, deleting the oldest
// on overflow. It also tracks caller-supplied remote snapshot names to
// reject duplicates.
type SnapshotScheduler struct {
	root     string
	ms       *model.Memstore
	provider *auth.Provider
	interval time.Duration
	atmost   int

	mu        sync.Mutex
	localFIFO []string
	remote    map[string]struct{}

	stopCh chan struct{}
	doneCh chan struct{}

	nowFn func() time.Time
}

// NewSnapshotScheduler constructs a scheduler retaining at most atmost
// local snapshots.
func NewSnapshotScheduler(root string, ms *model.Memstore, provider *auth.Provider, interval time.Duration, atmost int) *SnapshotScheduler {
	return &SnapshotScheduler{
		root:     root,
		ms:       ms,
		provider: provider,
		interval: interval,
		atmost:   atmost,
		remote:   make(map[string]struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		nowFn:    time.Now,
	}
}

// Start launches the background loop.
func (s *SnapshotScheduler) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer close(s.doneCh)
		for {
			select {
			case <-ticker.C:
				if err := s.CreateLocal(); err != nil {
					log.WithComponent("persist").Error().Err(err).Msg("snapshot cycle failed")
				}
			case <-s.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop signals the loop to exit and waits for it to finish.
func (s *SnapshotScheduler) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

const snapshotTimeFormat = "20060102-150405"

// CreateLocal creates one timestamped snapshot, evicting the oldest if
// the retention count would be exceeded. Returns
// ErrDuplicateSnapshotTimestamp if the server clock produced a name
// that already exists (clock moved backward since the last snapshot).
func (s *SnapshotScheduler) CreateLocal() error {
	name := s.nowFn().UTC().Format(snapshotTimeFormat)

	s.mu.Lock()
	for _, existing := range s.localFIFO {
		if existing == name {
			s.mu.Unlock()
			return ErrDuplicateSnapshotTimestamp
		}
	}
	s.mu.Unlock()

	layout := NewLayout(s.root)
	dir := layout.SnapshotDir(name)
	if _, err := os.Stat(dir); err == nil {
		return ErrDuplicateSnapshotTimestamp
	}

	fl := NewFlusher(dir)
	if err := fl.Flush(s.ms, s.provider, true); err != nil {
		return err
	}

	s.mu.Lock()
	s.localFIFO = append(s.localFIFO, name)
	var evict string
	if len(s.localFIFO) > s.atmost {
		evict = s.localFIFO[0]
		s.localFIFO = s.localFIFO[1:]
	}
	s.mu.Unlock()

	if evict != "" {
		if err := os.RemoveAll(layout.SnapshotDir(evict)); err != nil {
			log.WithComponent("persist").Error().Err(err).Str("snapshot", evict).Msg("failed to evict oldest snapshot")
		}
	}
	return nil
}

// validSnapshotName reports whether name is safe to join onto the
// remote snapshot directory: non-empty, ASCII alphanumeric/dash/
// underscore only, no path separators or "." / ".." segments.
func validSnapshotName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		ok := c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !ok {
			return false
		}
	}
	return true
}

// CreateRemote creates a named remote snapshot under rsnap/. Fails
// with ErrInvalidSnapshotName if name isn't a plain path segment, or
// ErrRemoteSnapshotExists if it is already in use or in-flight.
func (s *SnapshotScheduler) CreateRemote(name string) error {
	if !validSnapshotName(name) {
		return ErrInvalidSnapshotName
	}
	s.mu.Lock()
	if _, exists := s.remote[name]; exists {
		s.mu.Unlock()
		return ErrRemoteSnapshotExists
	}
	s.remote[name] = struct{}{}
	s.mu.Unlock()

	layout := NewLayout(s.root)
	dir := layout.RemoteSnapshotDir(name)
	if _, err := os.Stat(dir); err == nil {
		s.mu.Lock()
		delete(s.remote, name)
		s.mu.Unlock()
		return ErrRemoteSnapshotExists
	}

	fl := NewFlusher(dir)
	if err := fl.Flush(s.ms, s.provider, true); err != nil {
		s.mu.Lock()
		delete(s.remote, name)
		s.mu.Unlock()
		return err
	}
	return nil
}

// LocalSnapshots returns the current retention FIFO, oldest first.
func (s *SnapshotScheduler) LocalSnapshots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.localFIFO))
	copy(out, s.localFIFO)
	return out
}
