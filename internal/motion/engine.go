// Package motion synthesizes human-like cursor movement one tick at a time.
package motion

import (
	"math"
	"math/rand"
	"time"
)

// Screen reports the bounds of the active display. ok is false when no display
// is available, in which case the tick is skipped.
type Screen interface {
	Bounds() (size Size, ok bool)
}

// Cursor warps the real cursor. Calls are fire-and-forget.
type Cursor interface {
	MoveTo(p Point)
}

// Options configures an Engine. Rand and Clock are optional.
type Options struct {
	Screen Screen
	Cursor Cursor
	Rand   *rand.Rand
	Clock  func() time.Time

	// PauseChance overrides the automatic pause probability per tick. Nil
	// means the built-in PauseChance.
	PauseChance *float64
}

// Engine owns the motion state. It is not safe for concurrent use; callers
// that tick from one goroutine and deliver events from another must serialize
// access themselves.
type Engine struct {
	screen      Screen
	cursor      Cursor
	rnd         *rand.Rand
	clock       func() time.Time
	pauseChance float64

	state State
}

// New creates an engine with a random heading and margins. If a screen is
// available the position starts at its center.
func New(opts Options) *Engine {
	e := &Engine{
		screen:      opts.Screen,
		cursor:      opts.Cursor,
		rnd:         opts.Rand,
		clock:       opts.Clock,
		pauseChance: PauseChance,
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if opts.PauseChance != nil {
		e.pauseChance = *opts.PauseChance
	}

	now := e.clock()
	e.state = State{
		Heading:             e.uniform(0, 2*math.Pi),
		SpeedMultiplier:     e.uniform(MinSpeedMultiplier, MaxSpeedMultiplier),
		LastDirectionChange: now,
		LastFocusChange:     now,
	}
	e.randomizeMargins()
	e.place()
	return e
}

// Tick advances the simulation by one TickInterval.
func (e *Engine) Tick() {
	now := e.clock()
	e.state.SimClock += tickSeconds

	e.updatePause(now)
	if e.state.Pause.IsPaused() {
		return
	}

	size, ok := e.screenBounds()
	if !ok {
		return
	}
	if !e.state.placed {
		e.state.Position = size.Center()
		e.state.placed = true
	}

	e.updateFocus(now, size)
	e.updateHeading(now)
	e.updateVelocity()
	e.integrate(now, size)

	if e.cursor != nil {
		e.cursor.MoveTo(e.state.Position)
	}
}

// TogglePause applies a manual pause or resume immediately.
func (e *Engine) TogglePause() {
	now := e.clock()
	switch e.state.Pause.Phase {
	case Paused:
		e.resume(now)
	case NotPausing, SlowingDown:
		e.hardPause()
	}
}

// IsPaused reports whether movement is fully halted.
func (e *Engine) IsPaused() bool {
	return e.state.Pause.IsPaused()
}

// State returns a copy of the current motion state.
func (e *Engine) State() State {
	s := e.state
	if s.Focus != nil {
		f := *s.Focus
		s.Focus = &f
	}
	return s
}

func (e *Engine) place() {
	if size, ok := e.screenBounds(); ok {
		e.state.Position = size.Center()
		e.state.placed = true
	}
}

func (e *Engine) screenBounds() (Size, bool) {
	if e.screen == nil {
		return Size{}, false
	}
	size, ok := e.screen.Bounds()
	if !ok || size.Width <= 0 || size.Height <= 0 {
		return Size{}, false
	}
	return size, true
}

// uniform returns a value in [lo, hi).
func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + e.rnd.Float64()*(hi-lo)
}

func (e *Engine) chance(p float64) bool {
	return e.rnd.Float64() < p
}

func (e *Engine) randomDuration(lo, hi time.Duration) time.Duration {
	return lo + time.Duration(e.rnd.Int63n(int64(hi-lo)+1))
}
