package keepalive

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/stigoleg/keep-moving/internal/motion"
)

type fakeDisplay struct {
	mu    sync.Mutex
	size  motion.Size
	ok    bool
	moves []motion.Point
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{size: motion.Size{Width: 1280, Height: 800}, ok: true}
}

func (d *fakeDisplay) Bounds() (motion.Size, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.size, d.ok
}

func (d *fakeDisplay) MoveTo(p motion.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.moves = append(d.moves, p)
}

func (d *fakeDisplay) moveCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.moves)
}

func noPause() *float64 {
	p := 0.0
	return &p
}

func newTestKeeper(d *fakeDisplay) *Keeper {
	return New(Options{
		Display:      d,
		Seed:         42,
		TickInterval: time.Millisecond,
		PauseChance:  noPause(),
	})
}

func TestKeeperStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := newFakeDisplay()
	k := newTestKeeper(d)
	require.False(t, k.IsRunning(), "expected not running at start")

	require.NoError(t, k.StartIndefinite())
	assert.True(t, k.IsRunning())
	assert.Zero(t, k.TimeRemaining(), "indefinite sessions have no remaining time")

	assert.Eventually(t, func() bool { return d.moveCount() > 10 }, 2*time.Second, 5*time.Millisecond,
		"cursor should move while running")
	assert.Equal(t, SimulationHealthOK, k.GetSimulationHealth())

	require.NoError(t, k.Stop())
	assert.False(t, k.IsRunning())

	stopped := d.moveCount()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, d.moveCount(), "no ticks after Stop")
}

func TestKeeperAlreadyRunning(t *testing.T) {
	defer goleak.VerifyNone(t)

	k := newTestKeeper(newFakeDisplay())
	require.NoError(t, k.StartIndefinite())
	defer k.Stop()

	err := k.StartIndefinite()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
	assert.Error(t, k.StartTimed(time.Minute))
}

func TestKeeperRestartKeepsMotionState(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := newFakeDisplay()
	k := newTestKeeper(d)

	require.NoError(t, k.StartIndefinite())
	require.Eventually(t, func() bool { return d.moveCount() > 5 }, 2*time.Second, 5*time.Millisecond)
	k.TogglePause()
	require.NoError(t, k.Stop())
	before := k.Snapshot().Motion

	require.NoError(t, k.StartIndefinite())
	defer k.Stop()
	time.Sleep(10 * time.Millisecond)
	after := k.Snapshot().Motion

	assert.Equal(t, before.Position, after.Position, "a restart should not re-center the cursor")
}

func TestStartTimed(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("rejects non-positive durations", func(t *testing.T) {
		k := newTestKeeper(newFakeDisplay())
		assert.Error(t, k.StartTimed(0))
		assert.Error(t, k.StartTimed(-time.Second))
		assert.False(t, k.IsRunning())
	})

	t.Run("reports remaining time", func(t *testing.T) {
		k := newTestKeeper(newFakeDisplay())
		require.NoError(t, k.StartTimed(time.Minute))
		defer k.Stop()

		remaining := k.TimeRemaining()
		assert.Greater(t, remaining, 50*time.Second)
		assert.LessOrEqual(t, remaining, time.Minute)
	})

	t.Run("expires on its own", func(t *testing.T) {
		expired := make(chan struct{})
		k := New(Options{
			Display:      newFakeDisplay(),
			Seed:         1,
			TickInterval: time.Millisecond,
			OnExpire:     func() { close(expired) },
		})
		require.NoError(t, k.StartTimed(50*time.Millisecond))

		select {
		case <-expired:
		case <-time.After(2 * time.Second):
			t.Fatal("timed session did not expire")
		}
		assert.False(t, k.IsRunning())
		assert.Zero(t, k.TimeRemaining())
	})
}

func TestKeeperTogglePause(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := newFakeDisplay()
	k := newTestKeeper(d)
	require.NoError(t, k.StartIndefinite())
	defer k.Stop()

	require.Eventually(t, func() bool { return d.moveCount() > 5 }, 2*time.Second, 5*time.Millisecond)

	k.TogglePause()
	require.True(t, k.IsPaused(), "manual pause should be immediate")

	snap := k.Snapshot()
	assert.Equal(t, motion.Paused, snap.Motion.Pause.Phase)
	assert.Equal(t, motion.Vector{}, snap.Motion.CurrentVelocity)

	paused := d.moveCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, paused, d.moveCount(), "cursor moved while paused")

	k.TogglePause()
	assert.False(t, k.IsPaused())
	assert.Eventually(t, func() bool { return d.moveCount() > paused }, 2*time.Second, 5*time.Millisecond,
		"cursor should move again after resume")
}

func TestTogglePauseBeforeStart(t *testing.T) {
	k := newTestKeeper(newFakeDisplay())
	assert.False(t, k.IsPaused())

	k.TogglePause()
	assert.True(t, k.IsPaused())
	k.TogglePause()
	assert.False(t, k.IsPaused())
}

func TestKeeperNoScreen(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := newFakeDisplay()
	d.ok = false
	k := newTestKeeper(d)
	require.NoError(t, k.StartIndefinite())
	defer k.Stop()

	assert.Eventually(t, func() bool { return k.SkippedTicks() > 5 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, SimulationHealthNoScreen, k.GetSimulationHealth())
	assert.Zero(t, d.moveCount(), "cursor must not move without a screen")

	d.mu.Lock()
	d.ok = true
	d.mu.Unlock()

	assert.Eventually(t, func() bool { return k.GetSimulationHealth() == SimulationHealthOK }, 2*time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return d.moveCount() > 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestKeeperQuit(t *testing.T) {
	defer goleak.VerifyNone(t)

	k := newTestKeeper(newFakeDisplay())
	require.NoError(t, k.StartIndefinite())

	done := k.Done()
	k.Quit()

	select {
	case <-done:
	default:
		t.Fatal("Done not closed after Quit")
	}
	assert.False(t, k.IsRunning())

	// A second quit is harmless.
	k.Quit()
	<-k.Done()
}

func TestSnapshotBeforeStart(t *testing.T) {
	k := &Keeper{}
	s := k.Snapshot()
	assert.False(t, s.Running)
	assert.Equal(t, SimulationHealthUnknown, s.Health)
	assert.Equal(t, motion.NotPausing, s.Motion.Pause.Phase)
}

func TestSimulationHealthString(t *testing.T) {
	assert.Equal(t, "ok", SimulationHealthOK.String())
	assert.Equal(t, "no screen", SimulationHealthNoScreen.String())
	assert.Equal(t, "unknown", SimulationHealthUnknown.String())
}
