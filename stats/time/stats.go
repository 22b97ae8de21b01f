// Package time computes time-domain summary statistics of sample slices.
package time

import "math"

// Stats holds time-domain signal statistics.
type Stats struct {
	Length     int
	DC         float64 // mean
	MeanAbs    float64
	MeanSquare float64 // power
	RMS        float64
	Peak       float64 // max |x|
	PeakPos    int
}

// Calculate computes all statistics in a single pass.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	var (
		sum, c  float64
		sumAbs  float64
		sumSq   float64
		peak    float64
		peakPos int
	)

	for i, x := range signal {
		// Kahan summation for the mean.
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t

		a := math.Abs(x)
		sumAbs += a
		sumSq += x * x

		if a > peak {
			peak = a
			peakPos = i
		}
	}

	nf := float64(n)

	return Stats{
		Length:     n,
		DC:         sum / nf,
		MeanAbs:    sumAbs / nf,
		MeanSquare: sumSq / nf,
		RMS:        math.Sqrt(sumSq / nf),
		Peak:       peak,
		PeakPos:    peakPos,
	}
}

// MeanSquare returns the mean of x[i]^2, the signal power.
func MeanSquare(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return sumSq / float64(len(signal))
}

// MeanAbs returns the mean of |x[i]|.
func MeanAbs(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sum float64
	for _, x := range signal {
		sum += math.Abs(x)
	}

	return sum / float64(len(signal))
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	return math.Sqrt(MeanSquare(signal))
}
