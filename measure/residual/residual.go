package residual

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-anc/dsp/core"
	timestats "github.com/cwbudde/algo-anc/stats/time"
)

// Result is the outcome of a percent-error comparison.
type Result struct {
	// Percent is the mean relative error rounded to the nearest whole percent.
	Percent float64
	// Mean is the unrounded mean relative error in percent.
	Mean float64
	// CoercedNaN counts samples where either input was NaN and was treated as 0.
	CoercedNaN int
}

// PercentError returns the rounded mean relative error of experimental
// against accepted. Inputs must be non-empty and of equal length.
func PercentError(accepted, experimental []float64) (float64, error) {
	r, err := Analyze(accepted, experimental)
	if err != nil {
		return 0, err
	}
	return r.Percent, nil
}

// Analyze is PercentError with the unrounded mean and NaN coercion count.
func Analyze(accepted, experimental []float64) (Result, error) {
	if err := checkPair(accepted, experimental); err != nil {
		return Result{}, err
	}

	var (
		sum     float64
		coerced int
	)
	for i := range accepted {
		a, e := accepted[i], experimental[i]
		if math.IsNaN(a) || math.IsNaN(e) {
			coerced++
			if math.IsNaN(a) {
				a = 0
			}
			if math.IsNaN(e) {
				e = 0
			}
		}
		if a == 0 {
			continue
		}
		sum += math.Abs(a-e) / math.Abs(a) * 100
	}

	mean := sum / float64(len(accepted))
	return Result{
		Percent:    math.Round(mean),
		Mean:       mean,
		CoercedNaN: coerced,
	}, nil
}

// MSE returns the mean squared difference of the two signals.
func MSE(reference, processed []float64) (float64, error) {
	diff, err := difference(reference, processed)
	if err != nil {
		return 0, err
	}
	return timestats.MeanSquare(diff), nil
}

// MeanAbsError returns the mean absolute difference of the two signals.
func MeanAbsError(reference, processed []float64) (float64, error) {
	diff, err := difference(reference, processed)
	if err != nil {
		return 0, err
	}
	return timestats.MeanAbs(diff), nil
}

// SNR returns 10*log10(power(reference) / power(processed - reference)).
// A perfect match yields +Inf.
func SNR(reference, processed []float64) (float64, error) {
	diff, err := difference(reference, processed)
	if err != nil {
		return 0, err
	}
	noise := timestats.MeanSquare(diff)
	if noise == 0 {
		return math.Inf(1), nil
	}
	return core.LinearPowerToDB(timestats.MeanSquare(reference) / noise), nil
}

func difference(reference, processed []float64) ([]float64, error) {
	if err := checkPair(reference, processed); err != nil {
		return nil, err
	}
	diff := make([]float64, len(reference))
	for i := range diff {
		diff[i] = processed[i] - reference[i]
	}
	return diff, nil
}

func checkPair(a, b []float64) error {
	if len(a) == 0 {
		return fmt.Errorf("residual: empty input: %w", core.ErrInvalidInput)
	}
	if len(a) != len(b) {
		return fmt.Errorf("residual: length mismatch: %d vs %d: %w", len(a), len(b), core.ErrInvalidInput)
	}
	return nil
}
