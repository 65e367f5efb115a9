package motion

import "time"

// Motion tuning. These are fixed at build time.
const (
	// TickInterval is the fixed simulation step (60 Hz).
	TickInterval = time.Second / 60

	// Pause lifecycle
	PauseChance      = 0.0009 // per tick, roughly once every 18s at 60 Hz
	SlowingDuration  = 1500 * time.Millisecond
	MinPauseDuration = 2 * time.Second
	MaxPauseDuration = 8 * time.Second

	// Speed, in pixels per second before MoveFactor is applied.
	BaseSpeed          = 240.0
	MaxSpeedVariation  = 20.0
	MinSpeedMultiplier = 0.5
	MaxSpeedMultiplier = 1.5
	SpeedChangeChance  = 0.005
	SpeedDriftStep     = 0.05

	// Heading
	DirectionChangeBaseChance = 0.002
	DirectionChangeTimeFactor = 0.05
	DirectionChangeScale      = 0.2
	HeadingDrift              = 0.01
	MaxTurnRate               = 0.05

	// Velocity
	SmoothingFactor      = 0.08
	MicroJitterAmplitude = 0.3
	MicroJitterFrequency = 0.5
	MoveFactor           = 1.0
	MaxDeltaPerFrame     = 12.0

	// Low-frequency drift oscillators, see noise.go.
	NoiseFrequencyX = 0.7
	NoiseFrequencyY = 0.5
	NoiseAmplitudeX = 1.5
	NoiseAmplitudeY = 1.5

	// Boundary
	MaxEdgeMargin = 120.0

	// Focus attractor
	FocusChangeChance = 0.002
	FocusMaxAge       = 30 * time.Second
)

// tickSeconds is TickInterval expressed in seconds.
var tickSeconds = TickInterval.Seconds()
