package lms

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/algo-anc/dsp/buffer"
	"github.com/cwbudde/algo-anc/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// ctxCheckInterval is how many samples are processed between context checks.
const ctxCheckInterval = 4096

// State is the adaptive filter state at the end of a run.
type State struct {
	Order        int
	LearningRate float64
	Coefficients []float64
}

// Result is the output of one filter run.
type Result struct {
	// Filtered holds the error signal, i.e. the denoised estimate.
	Filtered *buffer.Buffer
	// State holds the final coefficients.
	State State
	// Start and End bound the adapted range [Start, End).
	Start, End int
}

// Filter cancels the part of noisy that is predictable from reference.
// See FilterContext.
func Filter(noisy, reference *buffer.Buffer, order int, learningRate float64, opts ...Option) (*Result, error) {
	return FilterContext(context.Background(), noisy, reference, order, learningRate, opts...)
}

// FilterContext runs the LMS recurrence over noisy using reference as the
// correlated noise input. Neither input is modified. The context is checked
// periodically; cancellation returns ctx.Err().
func FilterContext(ctx context.Context, noisy, reference *buffer.Buffer, order int, learningRate float64, opts ...Option) (*Result, error) {
	cfg := ApplyOptions(opts...)

	start, end, err := validate(noisy, reference, order, learningRate, cfg)
	if err != nil {
		return nil, err
	}

	x := noisy.Samples()
	ref := reference.Samples()
	var out *buffer.Buffer
	if cfg.Passthrough {
		out = noisy.Copy()
	} else {
		out = buffer.New(noisy.SampleRate(), len(x))
	}
	dst := out.Samples()

	w := make([]float64, order)
	step := make([]float64, order)
	limit := cfg.DivergenceLimit

	for n := start; n < end; n++ {
		if (n-start)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		hi := n - cfg.ReferenceDelay + 1
		window := ref[hi-order : hi]

		e := x[n] - vecmath.DotProduct(w, window)
		if !bounded(e, limit) {
			return nil, &DivergenceError{Index: n, Value: e}
		}

		vecmath.ScaleBlock(step, window, learningRate*e)
		vecmath.AddBlockInPlace(w, step)
		dst[n] = e
	}

	if i := core.FirstNonFinite(w); i >= 0 {
		return nil, &DivergenceError{Index: end - 1, Value: w[i]}
	}
	if peak := vecmath.MaxAbs(w); peak > limit {
		return nil, &DivergenceError{Index: end - 1, Value: peak}
	}

	return &Result{
		Filtered: out,
		State: State{
			Order:        order,
			LearningRate: learningRate,
			Coefficients: w,
		},
		Start: start,
		End:   end,
	}, nil
}

func validate(noisy, reference *buffer.Buffer, order int, learningRate float64, cfg Config) (start, end int, err error) {
	if err := buffer.SameShape(noisy, reference); err != nil {
		return 0, 0, fmt.Errorf("lms: %w", err)
	}
	length := noisy.Len()
	if order < 1 {
		return 0, 0, fmt.Errorf("lms: order must be > 0: %d: %w", order, core.ErrInvalidInput)
	}
	if order >= length {
		return 0, 0, fmt.Errorf("lms: order %d must be < length %d: %w", order, length, core.ErrInvalidInput)
	}
	if !(learningRate > 0 && learningRate < 1) {
		return 0, 0, fmt.Errorf("lms: learning rate must be in (0,1): %f: %w", learningRate, core.ErrInvalidInput)
	}

	start = order + max(cfg.ReferenceDelay-1, 0)
	end = length - cfg.GuardBand
	if end <= start {
		return 0, 0, fmt.Errorf("lms: guard band %d and delay %d leave no samples to adapt in %d: %w",
			cfg.GuardBand, cfg.ReferenceDelay, length, core.ErrInvalidInput)
	}
	return start, end, nil
}

func bounded(v, limit float64) bool {
	return core.IsFinite(v) && math.Abs(v) <= limit
}
