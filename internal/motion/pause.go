package motion

import (
	"math"
	"time"
)

// updatePause advances the pause lifecycle for this tick.
func (e *Engine) updatePause(now time.Time) {
	p := &e.state.Pause
	switch p.Phase {
	case NotPausing:
		if e.chance(e.pauseChance) {
			e.state.DesiredPauseEnd = now.Add(SlowingDuration + e.randomDuration(MinPauseDuration, MaxPauseDuration))
			*p = PauseState{Phase: SlowingDown, Start: now}
		}
	case SlowingDown:
		if now.Sub(p.Start) >= SlowingDuration {
			*p = PauseState{Phase: Paused, End: e.state.DesiredPauseEnd}
		}
	case Paused:
		if !p.Indefinite() && !now.Before(p.End) {
			e.resume(now)
		}
	}
}

// slowdownFactor scales displacement while SlowingDown. It falls linearly from
// 1 to 0 over SlowingDuration and is 1 in every other phase.
func (e *Engine) slowdownFactor(now time.Time) float64 {
	if e.state.Pause.Phase != SlowingDown {
		return 1
	}
	elapsed := now.Sub(e.state.Pause.Start).Seconds()
	return 1 - math.Min(elapsed/SlowingDuration.Seconds(), 1)
}

// resume leaves any pause and shakes up the motion so the cursor does not
// continue exactly where it stopped.
func (e *Engine) resume(now time.Time) {
	e.state.Pause = PauseState{Phase: NotPausing}
	e.state.DesiredPauseEnd = time.Time{}
	e.state.SpeedMultiplier = e.uniform(MinSpeedMultiplier, MaxSpeedMultiplier)
	e.state.Heading = normalizeAngle(e.state.Heading + e.uniform(-math.Pi/4, math.Pi/4))
	e.randomizeMargins()
	e.state.LastDirectionChange = now
}

// hardPause stops immediately and indefinitely, without a slowdown ramp.
func (e *Engine) hardPause() {
	e.state.Pause = PauseState{Phase: Paused}
	e.state.DesiredPauseEnd = time.Time{}
	e.state.CurrentVelocity = Vector{}
	e.state.TargetVelocity = Vector{}
}

// ForcePause puts the engine into an automatic pause ending at end. A zero end
// pauses indefinitely.
func (e *Engine) ForcePause(end time.Time) {
	e.state.Pause = PauseState{Phase: Paused, End: end}
	e.state.DesiredPauseEnd = end
}
