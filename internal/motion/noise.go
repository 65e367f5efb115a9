package motion

import "math"

// The drift oscillators are deterministic in simulated time: the same SimClock
// always yields the same offset. Randomness lives elsewhere.

func noiseX(t float64) float64 {
	return oscillate(t, NoiseFrequencyX) * NoiseAmplitudeX
}

func noiseY(t float64) float64 {
	return oscillate(t, NoiseFrequencyY) * NoiseAmplitudeY
}

func oscillate(t, freq float64) float64 {
	return math.Sin(t*freq) * math.Cos(t*freq*1.3)
}
