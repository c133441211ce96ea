package persist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytable/skyd/pkg/auth"
	"github.com/skytable/skyd/pkg/model"
)

func newTestSnapshotScheduler(t *testing.T) *SnapshotScheduler {
	t.Helper()
	root := t.TempDir()
	ms, err := model.NewMemstore()
	require.NoError(t, err)
	provider := auth.NewProvider("")
	return NewSnapshotScheduler(root, ms, provider, time.Hour, 2)
}

func TestSnapshotCreateLocalAndRetention(t *testing.T) {
	s := newTestSnapshotScheduler(t)

	ticks := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 2, 0, time.UTC),
	}
	i := 0
	s.nowFn = func() time.Time {
		tm := ticks[i]
		i++
		return tm
	}

	require.NoError(t, s.CreateLocal())
	require.NoError(t, s.CreateLocal())
	require.NoError(t, s.CreateLocal())

	snaps := s.LocalSnapshots()
	assert.Len(t, snaps, 2)
}

func TestSnapshotDuplicateTimestampRefused(t *testing.T) {
	s := newTestSnapshotScheduler(t)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.nowFn = func() time.Time { return fixed }

	require.NoError(t, s.CreateLocal())
	err := s.CreateLocal()
	assert.ErrorIs(t, err, ErrDuplicateSnapshotTimestamp)
}

func TestRemoteSnapshotNameCollision(t *testing.T) {
	s := newTestSnapshotScheduler(t)
	require.NoError(t, s.CreateRemote("nightly"))
	err := s.CreateRemote("nightly")
	assert.ErrorIs(t, err, ErrRemoteSnapshotExists)
}

func TestRemoteSnapshotNameRejectsTraversal(t *testing.T) {
	s := newTestSnapshotScheduler(t)

	for _, name := range []string{"../../x", "a/b", "..", ".", "", "a b"} {
		err := s.CreateRemote(name)
		assert.ErrorIsf(t, err, ErrInvalidSnapshotName, "name %q", name)
	}

	_, ok := s.remote[".."]
	assert.False(t, ok)
}
