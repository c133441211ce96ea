package persist

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytable/skyd/pkg/auth"
	"github.com/skytable/skyd/pkg/model"
)

func TestTripSwitchFiresOnce(t *testing.T) {
	var ts TripSwitch
	assert.False(t, ts.Fire())
	ts.Set()
	assert.True(t, ts.Fire())
	assert.False(t, ts.Fire())
}

func TestBGSaveSchedulerRunsCycle(t *testing.T) {
	root := t.TempDir()
	ms, err := model.NewMemstore()
	require.NoError(t, err)
	provider := auth.NewProvider("")

	var trip TripSwitch
	trip.Set()
	sched := NewBGSaveScheduler(root, ms, provider, 10*time.Millisecond, true, &trip)
	sched.Start()
	time.Sleep(30 * time.Millisecond)
	sched.Stop()

	assert.False(t, sched.Poisoned())
}

func TestBGSaveSchedulerRunsCleanupOnTrip(t *testing.T) {
	root := t.TempDir()
	ms, err := model.NewMemstore()
	require.NoError(t, err)
	provider := auth.NewProvider("")

	fl := NewFlusher(root)
	require.NoError(t, fl.Flush(ms, provider, true))

	layout := NewLayout(root)
	orphanTablePath := layout.TablePath(model.DefaultKeyspace, "stale")
	require.NoError(t, os.WriteFile(orphanTablePath, []byte{}, 0o644))

	var preload TripSwitch
	var cleanup TripSwitch
	cleanup.Set()

	sched := NewBGSaveScheduler(root, ms, provider, 10*time.Millisecond, false, &preload)
	sched.OnCleanup(&cleanup)
	sched.Start()
	time.Sleep(30 * time.Millisecond)
	sched.Stop()

	_, err = os.Stat(orphanTablePath)
	assert.True(t, os.IsNotExist(err), "armed cleanup trip should remove orphaned table file after a flush cycle")
	assert.False(t, cleanup.Fire(), "cleanup trip should be consumed, not left armed")
}
