package integration

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/stigoleg/keep-moving/internal/keepalive"
	"github.com/stigoleg/keep-moving/internal/motion"
)

// screen is a display whose size can be changed or removed while the keeper runs.
type screen struct {
	mu    sync.Mutex
	size  motion.Size
	ok    bool
	moves []motion.Point
}

func newScreen(w, h float64) *screen {
	return &screen{size: motion.Size{Width: w, Height: h}, ok: true}
}

func (s *screen) Bounds() (motion.Size, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size, s.ok
}

func (s *screen) MoveTo(p motion.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves = append(s.moves, p)
}

func (s *screen) setAvailable(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ok = ok
}

func (s *screen) recorded() []motion.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]motion.Point(nil), s.moves...)
}

func noPause() *float64 {
	p := 0.0
	return &p
}

func newKeeper(s *screen, opts keepalive.Options) *keepalive.Keeper {
	opts.Display = s
	if opts.Seed == 0 {
		opts.Seed = 7
	}
	if opts.TickInterval == 0 {
		opts.TickInterval = time.Millisecond
	}
	return keepalive.New(opts)
}

// TestCursorStaysOnScreen runs the keeper against a fake display and checks
// every emitted position against the screen.
func TestCursorStaysOnScreen(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newScreen(800, 600)
	k := newKeeper(s, keepalive.Options{PauseChance: noPause()})

	require.NoError(t, k.StartIndefinite())
	require.Eventually(t, func() bool { return len(s.recorded()) >= 200 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, k.Stop())

	moves := s.recorded()
	for i, p := range moves {
		require.True(t, p.X >= 0 && p.X <= 800 && p.Y >= 0 && p.Y <= 600,
			"move %d out of screen: %+v", i, p)
	}

	st := k.Snapshot().Motion
	assert.Equal(t, motion.NotPausing, st.Pause.Phase)
	assert.Equal(t, moves[len(moves)-1], st.Position, "last move should be the engine position")
}

// TestTimedSessionExpires verifies a timed run stops on its own and reports it.
func TestTimedSessionExpires(t *testing.T) {
	defer goleak.VerifyNone(t)

	expired := make(chan struct{})
	s := newScreen(1024, 768)
	k := newKeeper(s, keepalive.Options{
		OnExpire: func() { close(expired) },
	})

	require.NoError(t, k.StartTimed(100*time.Millisecond))
	assert.Greater(t, k.TimeRemaining(), time.Duration(0))

	select {
	case <-expired:
	case <-time.After(5 * time.Second):
		t.Fatal("timed session did not expire")
	}

	assert.False(t, k.IsRunning(), "keeper should stop after expiry")
	assert.Zero(t, k.TimeRemaining())
	assert.NotEmpty(t, s.recorded())
}

// TestPauseFreezesCursor verifies no moves are emitted while paused and that
// movement continues after resuming.
func TestPauseFreezesCursor(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newScreen(1280, 800)
	k := newKeeper(s, keepalive.Options{PauseChance: noPause()})
	require.NoError(t, k.StartIndefinite())
	defer func() { require.NoError(t, k.Stop()) }()

	require.Eventually(t, func() bool { return len(s.recorded()) > 10 }, 2*time.Second, 5*time.Millisecond)

	k.TogglePause()
	require.True(t, k.IsPaused())
	frozen := k.Snapshot().Motion
	assert.Zero(t, frozen.CurrentVelocity)
	assert.Zero(t, frozen.TargetVelocity)

	count := len(s.recorded())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, count, len(s.recorded()), "cursor moved while paused")
	assert.Equal(t, frozen.Position, k.Snapshot().Motion.Position)

	k.TogglePause()
	require.False(t, k.IsPaused())
	assert.Eventually(t, func() bool { return len(s.recorded()) > count }, 2*time.Second, 5*time.Millisecond,
		"cursor should move after resume")
}

// TestScreenLossAndRecovery verifies ticks are skipped without a screen and
// movement resumes once one is back.
func TestScreenLossAndRecovery(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newScreen(1280, 800)
	s.setAvailable(false)
	k := newKeeper(s, keepalive.Options{PauseChance: noPause()})
	require.NoError(t, k.StartIndefinite())
	defer func() { require.NoError(t, k.Stop()) }()

	require.Eventually(t, func() bool { return k.SkippedTicks() > 5 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, keepalive.SimulationHealthNoScreen, k.GetSimulationHealth())
	assert.Empty(t, s.recorded())

	s.setAvailable(true)
	require.Eventually(t, func() bool { return len(s.recorded()) > 0 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, keepalive.SimulationHealthOK, k.GetSimulationHealth())
}

// TestQuitSignalsDone verifies Quit stops the keeper and closes Done, as the
// quit hotkey does.
func TestQuitSignalsDone(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newScreen(1280, 800)
	k := newKeeper(s, keepalive.Options{})
	require.NoError(t, k.StartIndefinite())

	go k.Quit()

	select {
	case <-k.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Done was not closed")
	}
	assert.False(t, k.IsRunning())
}
