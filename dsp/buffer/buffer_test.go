package buffer

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-anc/dsp/core"
)

func TestNewZeroFilled(t *testing.T) {
	b := New(16000, 8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	if b.SampleRate() != 16000 {
		t.Fatalf("SampleRate() = %d, want 16000", b.SampleRate())
	}
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewNegativeLength(t *testing.T) {
	b := New(8000, -1)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 for negative input", b.Len())
	}
}

func TestFromSamplesCopies(t *testing.T) {
	s := []float64{1, 2, 3}
	b := FromSamples(8000, s)
	b.Samples()[0] = 99
	if s[0] != 1 {
		t.Fatal("FromSamples should not share memory with its argument")
	}
}

func TestCopyIsDeep(t *testing.T) {
	b := FromSamples(8000, []float64{1, 2, 3})
	c := b.Copy()
	c.Samples()[1] = -5
	if b.Samples()[1] != 2 {
		t.Fatal("Copy shares memory with original")
	}
	if c.SampleRate() != b.SampleRate() {
		t.Fatalf("Copy sample rate = %d, want %d", c.SampleRate(), b.SampleRate())
	}
}

func TestPCM16RoundTrip(t *testing.T) {
	pcm := []int16{-32768, -1, 0, 1, 32767}
	b := FromSamples(44100, []float64{-32768, -1, 0, 1, 32767})
	got := b.PCM16()
	for i := range pcm {
		if got[i] != pcm[i] {
			t.Fatalf("PCM16()[%d] = %d, want %d", i, got[i], pcm[i])
		}
	}
}

func TestPCM16Saturates(t *testing.T) {
	b := FromSamples(8000, []float64{50000.7, -50000.2, 10.5, -10.5})
	want := []int16{32767, -32768, 11, -11}
	got := b.PCM16()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PCM16()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		b    *Buffer
		ok   bool
	}{
		{name: "nil", b: nil},
		{name: "empty", b: New(8000, 0)},
		{name: "bad rate", b: New(0, 4)},
		{name: "valid", b: New(8000, 4), ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.b)
			if tt.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, core.ErrInvalidInput) {
				t.Fatalf("Validate() = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSameShapeMismatch(t *testing.T) {
	err := SameShape(New(8000, 4), New(8000, 5))
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("SameShape() = %v, want ErrInvalidInput", err)
	}
	if err := SameShape(New(8000, 4), New(8000, 4)); err != nil {
		t.Fatalf("SameShape() = %v, want nil", err)
	}
}
