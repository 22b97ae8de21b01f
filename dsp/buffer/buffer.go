package buffer

import (
	"fmt"

	"github.com/cwbudde/algo-anc/dsp/core"
)

// Buffer is a fixed-length run of mono samples at a known sample rate.
type Buffer struct {
	sampleRate int
	samples    []float64
}

// New returns a zero-filled Buffer of the given length.
func New(sampleRate, length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{sampleRate: sampleRate, samples: make([]float64, length)}
}

// FromSamples returns a Buffer holding a copy of samples.
func FromSamples(sampleRate int, samples []float64) *Buffer {
	return &Buffer{sampleRate: sampleRate, samples: core.Clone(samples)}
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int {
	return b.sampleRate
}

// Samples returns the underlying slice. Callers that did not create the
// Buffer must treat it as read-only.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	return FromSamples(b.sampleRate, b.samples)
}

// PCM16 returns the samples rounded and saturated to the int16 range.
func (b *Buffer) PCM16() []int16 {
	out := make([]int16, len(b.samples))
	for i, v := range b.samples {
		out[i] = core.ToPCM16(v)
	}
	return out
}

// Validate reports core.ErrInvalidInput for a nil or empty buffer or a
// non-positive sample rate.
func Validate(b *Buffer) error {
	if b == nil {
		return fmt.Errorf("buffer is nil: %w", core.ErrInvalidInput)
	}
	if len(b.samples) == 0 {
		return fmt.Errorf("buffer has no samples: %w", core.ErrInvalidInput)
	}
	if b.sampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %d: %w", b.sampleRate, core.ErrInvalidInput)
	}
	return nil
}

// SameShape reports core.ErrInvalidInput unless a and b are valid and hold
// the same number of samples.
func SameShape(a, b *Buffer) error {
	if err := Validate(a); err != nil {
		return err
	}
	if err := Validate(b); err != nil {
		return err
	}
	if a.Len() != b.Len() {
		return fmt.Errorf("length mismatch: %d vs %d: %w", a.Len(), b.Len(), core.ErrInvalidInput)
	}
	return nil
}
