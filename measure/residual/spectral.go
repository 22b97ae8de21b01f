package residual

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-anc/dsp/core"
	"github.com/mjibson/go-dsp/window"
)

// DefaultFrameSize is the analysis frame used by LogSpectralDistance when
// frameSize is 0.
const DefaultFrameSize = 512

const spectralFloor = 1e-10

// LogSpectralDistance returns the mean over Hann-windowed, half-overlapping
// frames of the RMS difference, in dB, between the power spectra of
// reference and processed. frameSize must be a power of two; 0 selects
// DefaultFrameSize. Signals shorter than one frame are zero-padded.
func LogSpectralDistance(reference, processed []float64, frameSize int) (float64, error) {
	if err := checkPair(reference, processed); err != nil {
		return 0, err
	}
	if frameSize == 0 {
		frameSize = DefaultFrameSize
	}
	if frameSize < 2 || frameSize&(frameSize-1) != 0 {
		return 0, fmt.Errorf("residual: frame size must be a power of two >= 2: %d: %w", frameSize, core.ErrInvalidInput)
	}

	plan, err := algofft.NewPlan64(frameSize)
	if err != nil {
		return 0, fmt.Errorf("residual: failed to create FFT plan: %w", err)
	}

	win := window.Hann(frameSize)
	hop := frameSize / 2
	bins := frameSize/2 + 1

	refIn := make([]complex128, frameSize)
	procIn := make([]complex128, frameSize)
	refOut := make([]complex128, frameSize)
	procOut := make([]complex128, frameSize)

	var (
		total  float64
		frames int
	)
	for start := 0; start == 0 || start+frameSize <= len(reference); start += hop {
		for i := range frameSize {
			var r, p float64
			if j := start + i; j < len(reference) {
				r, p = reference[j], processed[j]
			}
			refIn[i] = complex(r*win[i], 0)
			procIn[i] = complex(p*win[i], 0)
		}

		if err := plan.Forward(refOut, refIn); err != nil {
			return 0, fmt.Errorf("residual: forward FFT failed: %w", err)
		}
		if err := plan.Forward(procOut, procIn); err != nil {
			return 0, fmt.Errorf("residual: forward FFT failed: %w", err)
		}

		var sumSq float64
		for k := range bins {
			d := 10 * math.Log10((power(refOut[k])+spectralFloor)/(power(procOut[k])+spectralFloor))
			sumSq += d * d
		}
		total += math.Sqrt(sumSq / float64(bins))
		frames++
	}

	return total / float64(frames), nil
}

func power(c complex128) float64 {
	re, im := real(c), imag(c)
	return re*re + im*im
}
