package lms

import (
	"fmt"

	"github.com/cwbudde/algo-anc/dsp/core"
)

// DivergenceError reports the sample at which adaptation became unstable.
// It matches core.ErrDivergence under errors.Is.
type DivergenceError struct {
	// Index is the sample index being processed when divergence was detected.
	Index int
	// Value is the offending error or coefficient value.
	Value float64
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("lms: diverged at sample %d (value %g)", e.Index, e.Value)
}

// Unwrap returns core.ErrDivergence.
func (e *DivergenceError) Unwrap() error {
	return core.ErrDivergence
}
