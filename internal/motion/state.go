package motion

import (
	"math"
	"time"
)

// Point is a location in engine space. The origin is the bottom-left corner of
// the active screen and y grows upward.
type Point struct {
	X float64
	Y float64
}

// Vector is a per-tick velocity in pixels.
type Vector struct {
	X float64
	Y float64
}

// Len returns the magnitude of the vector.
func (v Vector) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Size is the width and height of the active screen.
type Size struct {
	Width  float64
	Height float64
}

// Center returns the middle of the screen.
func (s Size) Center() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

// Margins are the insets from each screen edge that bound the movement
// rectangle.
type Margins struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// Phase is the stage of the pause lifecycle.
type Phase int

const (
	NotPausing Phase = iota
	SlowingDown
	Paused
)

func (p Phase) String() string {
	switch p {
	case NotPausing:
		return "NotPausing"
	case SlowingDown:
		return "SlowingDown"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// PauseState is the tagged pause variant. Start is set while SlowingDown, End
// while Paused. A Paused state with a zero End never expires.
type PauseState struct {
	Phase Phase
	Start time.Time
	End   time.Time
}

// Indefinite reports whether the state is a pause without an end time.
func (p PauseState) Indefinite() bool {
	return p.Phase == Paused && p.End.IsZero()
}

// IsPaused reports whether integration is halted.
func (p PauseState) IsPaused() bool {
	return p.Phase == Paused
}

// State is the single mutable record shared by every part of the simulation.
type State struct {
	Position        Point
	CurrentVelocity Vector
	TargetVelocity  Vector
	Heading         float64
	SpeedMultiplier float64
	Margins         Margins
	Pause           PauseState
	Focus           *Point

	// SimClock is elapsed simulated time in seconds and feeds the noise
	// oscillators.
	SimClock float64

	LastDirectionChange time.Time
	LastFocusChange     time.Time
	DesiredPauseEnd     time.Time

	// placed is false until Position has been centered on a real screen.
	placed bool
}

// normalizeAngle wraps a into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	// math.Mod of a tiny negative can round up to exactly 2π.
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
