package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// GaussianNoise generates normal noise with the given standard deviation
// from a fixed seed.
func GaussianNoise(seed int64, stddev float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64() * stddev
	}
	return out
}

// Impulse generates a single impulse of the given amplitude at pos.
func Impulse(length, pos int, amplitude float64) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = amplitude
	}
	return out
}

// Add returns a[i] + scale*b[i] over the shorter of the two slices.
func Add(a, b []float64, scale float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := range out {
		out[i] = a[i] + scale*b[i]
	}
	return out
}

// MeanSquareDiff returns the mean squared difference of a and b over [from, to).
func MeanSquareDiff(a, b []float64, from, to int) float64 {
	if to <= from {
		return 0
	}
	var sum float64
	for i := from; i < to; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum / float64(to-from)
}
