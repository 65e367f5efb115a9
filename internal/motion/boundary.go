package motion

import (
	"math"
	"time"
)

// Rect is the movement rectangle for the current margins.
type Rect struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Bounds returns the rectangle the margins leave on a screen of the given
// size. Each margin is capped at a quarter of its axis so small screens keep
// a usable area.
func (m Margins) Bounds(size Size) Rect {
	qx, qy := size.Width/4, size.Height/4
	return Rect{
		MinX: math.Min(m.Left, qx),
		MaxX: size.Width - math.Min(m.Right, qx),
		MinY: math.Min(m.Bottom, qy),
		MaxY: size.Height - math.Min(m.Top, qy),
	}
}

// integrate moves the position by the current velocity and keeps it inside
// the margins, bouncing off any edge it reaches. Axes are checked against the
// same rectangle, so a corner bounces twice.
func (e *Engine) integrate(now time.Time, size Size) {
	s := &e.state
	factor := e.slowdownFactor(now)

	// Margins drawn on resume may not contain the resting point yet.
	e.fitMargins(size)

	s.Position.X += clamp(s.CurrentVelocity.X*MoveFactor*factor, -MaxDeltaPerFrame, MaxDeltaPerFrame)
	s.Position.Y += clamp(s.CurrentVelocity.Y*MoveFactor*factor, -MaxDeltaPerFrame, MaxDeltaPerFrame)

	r := s.Margins.Bounds(size)
	bounces := 0
	if s.Position.X > r.MaxX || s.Position.X < r.MinX {
		s.Position.X = clamp(s.Position.X, r.MinX, r.MaxX)
		bounces++
	}
	if s.Position.Y > r.MaxY || s.Position.Y < r.MinY {
		s.Position.Y = clamp(s.Position.Y, r.MinY, r.MaxY)
		bounces++
	}
	for i := 0; i < bounces; i++ {
		e.bounce()
	}
	e.fitMargins(size)
}

// fitMargins narrows any margin the position already lies past, so new
// margins never drag the cursor further than one frame's displacement.
func (e *Engine) fitMargins(size Size) {
	s := &e.state
	s.Margins.Left = math.Min(s.Margins.Left, math.Max(s.Position.X, 0))
	s.Margins.Right = math.Min(s.Margins.Right, math.Max(size.Width-s.Position.X, 0))
	s.Margins.Bottom = math.Min(s.Margins.Bottom, math.Max(s.Position.Y, 0))
	s.Margins.Top = math.Min(s.Margins.Top, math.Max(size.Height-s.Position.Y, 0))
}

func (e *Engine) bounce() {
	e.state.Heading = normalizeAngle(e.state.Heading + math.Pi*e.uniform(0.2, 0.8))
	e.randomizeMargins()
	e.state.SpeedMultiplier = e.uniform(MinSpeedMultiplier, MaxSpeedMultiplier)
}

func (e *Engine) randomizeMargins() {
	e.state.Margins = Margins{
		Left:   e.uniform(0, MaxEdgeMargin),
		Right:  e.uniform(0, MaxEdgeMargin),
		Top:    e.uniform(0, MaxEdgeMargin),
		Bottom: e.uniform(0, MaxEdgeMargin),
	}
}
