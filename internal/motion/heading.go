package motion

import (
	"math"
	"time"
)

// updateHeading applies speed drift, direction changes, continuous drift and
// focus steering, then normalizes the heading.
func (e *Engine) updateHeading(now time.Time) {
	s := &e.state

	if e.chance(SpeedChangeChance) {
		s.SpeedMultiplier = e.uniform(MinSpeedMultiplier, MaxSpeedMultiplier)
	} else {
		s.SpeedMultiplier = clamp(
			s.SpeedMultiplier+e.uniform(-SpeedDriftStep, SpeedDriftStep),
			MinSpeedMultiplier, MaxSpeedMultiplier,
		)
	}

	// The longer the heading has held, the more likely it is to change.
	sinceChange := now.Sub(s.LastDirectionChange).Seconds()
	if e.chance(directionChangeChance(sinceChange)) {
		s.Heading += e.uniform(-math.Pi/2, math.Pi/2) * DirectionChangeScale
		s.LastDirectionChange = now
	}

	s.Heading += e.uniform(-HeadingDrift, HeadingDrift)

	if s.Focus != nil {
		bearing := math.Atan2(s.Focus.Y-s.Position.Y, s.Focus.X-s.Position.X)
		turn := clamp(angleDiff(s.Heading, bearing), -MaxTurnRate, MaxTurnRate)
		s.Heading += turn / 2
	}

	s.Heading = normalizeAngle(s.Heading)
}

// updateVelocity computes the target velocity and eases the current velocity
// toward it.
func (e *Engine) updateVelocity() {
	s := &e.state

	speed := BaseSpeed*s.SpeedMultiplier + e.uniform(-MaxSpeedVariation, MaxSpeedVariation)*0.1
	s.TargetVelocity = Vector{
		X: math.Cos(s.Heading)*speed*tickSeconds + noiseX(s.SimClock)*0.1,
		Y: math.Sin(s.Heading)*speed*tickSeconds + noiseY(s.SimClock)*0.1*tickSeconds,
	}

	s.CurrentVelocity.X += (s.TargetVelocity.X - s.CurrentVelocity.X) * SmoothingFactor
	s.CurrentVelocity.Y += (s.TargetVelocity.Y - s.CurrentVelocity.Y) * SmoothingFactor

	if s.Pause.Phase == NotPausing {
		s.CurrentVelocity.X += e.uniform(-MicroJitterAmplitude, MicroJitterAmplitude) * MicroJitterFrequency
		s.CurrentVelocity.Y += e.uniform(-MicroJitterAmplitude, MicroJitterAmplitude) * MicroJitterFrequency
	}
}

func directionChangeChance(secondsSinceChange float64) float64 {
	return DirectionChangeBaseChance + secondsSinceChange*DirectionChangeTimeFactor*0.01
}

// angleDiff returns the signed shortest rotation from a to b, in (-π, π].
func angleDiff(from, to float64) float64 {
	d := math.Mod(to-from, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
