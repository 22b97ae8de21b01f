package signal

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-anc/dsp/buffer"
	"github.com/cwbudde/algo-anc/dsp/core"
	timestats "github.com/cwbudde/algo-anc/stats/time"
	"github.com/cwbudde/algo-vecmath"
)

// Profile sets the level of synthetic noise relative to the clean signal's
// peak absolute amplitude.
type Profile struct {
	amplitudeFraction float64
}

// NewProfile returns a Profile for a fraction in the open interval (0, 1).
func NewProfile(fraction float64) (Profile, error) {
	if err := validateFraction(fraction); err != nil {
		return Profile{}, err
	}
	return Profile{amplitudeFraction: fraction}, nil
}

// AmplitudeFraction returns the configured fraction.
func (p Profile) AmplitudeFraction() float64 {
	return p.amplitudeFraction
}

func validateFraction(fraction float64) error {
	if !(fraction > 0 && fraction < 1) {
		return fmt.Errorf("amplitude fraction must be in (0,1): %f: %w", fraction, core.ErrInvalidInput)
	}
	return nil
}

// Synthesizer generates noise from its own random source. It is not safe for
// concurrent use; give each goroutine its own Synthesizer.
type Synthesizer struct {
	rng *rand.Rand
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSeed seeds the synthesizer's random source.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand makes the synthesizer draw from r.
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) {
		if r != nil {
			s.rng = r
		}
	}
}

// NewSynthesizer returns a Synthesizer seeded with 1 unless an option says
// otherwise.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{rng: rand.New(rand.NewSource(1))}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// GaussianNoise returns n samples of zero-mean, unit-variance normal noise.
func (s *Synthesizer) GaussianNoise(sampleRate, n int) (*buffer.Buffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d: %w", n, core.ErrInvalidInput)
	}
	out := buffer.New(sampleRate, n)
	samples := out.Samples()
	for i := range samples {
		samples[i] = s.rng.NormFloat64()
	}
	return out, nil
}

// Synthesize draws fresh noise for clean and returns it together with the
// noisy mixture clean + noise*Scale(clean, profile). clean is not modified.
func (s *Synthesizer) Synthesize(clean *buffer.Buffer, profile Profile) (noise, noisy *buffer.Buffer, err error) {
	if err := buffer.Validate(clean); err != nil {
		return nil, nil, err
	}
	if err := validateFraction(profile.amplitudeFraction); err != nil {
		return nil, nil, err
	}

	noise, err = s.GaussianNoise(clean.SampleRate(), clean.Len())
	if err != nil {
		return nil, nil, err
	}

	noisy, err = Mix(clean, noise, Scale(clean, profile))
	if err != nil {
		return nil, nil, err
	}
	return noise, noisy, nil
}

// Scale returns the factor applied to unit noise: fraction * max|clean|.
func Scale(clean *buffer.Buffer, profile Profile) float64 {
	return profile.amplitudeFraction * vecmath.MaxAbs(clean.Samples())
}

// Mix returns clean + noise*scale as a new buffer at clean's sample rate.
func Mix(clean, noise *buffer.Buffer, scale float64) (*buffer.Buffer, error) {
	if err := buffer.SameShape(clean, noise); err != nil {
		return nil, err
	}
	out := buffer.New(clean.SampleRate(), clean.Len())
	dst := out.Samples()
	vecmath.ScaleBlock(dst, noise.Samples(), scale)
	vecmath.AddBlockInPlace(dst, clean.Samples())
	return out, nil
}

// Scaled returns b multiplied by k as a new buffer.
func Scaled(b *buffer.Buffer, k float64) (*buffer.Buffer, error) {
	if err := buffer.Validate(b); err != nil {
		return nil, err
	}
	out := buffer.New(b.SampleRate(), b.Len())
	vecmath.ScaleBlock(out.Samples(), b.Samples(), k)
	return out, nil
}

// Normalize returns b scaled to unit RMS. A silent buffer is rejected.
func Normalize(b *buffer.Buffer) (*buffer.Buffer, error) {
	if err := buffer.Validate(b); err != nil {
		return nil, err
	}
	rms := timestats.RMS(b.Samples())
	if rms == 0 || !core.IsFinite(rms) {
		return nil, fmt.Errorf("cannot normalize signal with RMS %v: %w", rms, core.ErrInvalidInput)
	}
	return Scaled(b, 1/rms)
}
