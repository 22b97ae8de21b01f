package batch

import (
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultOrder        = 100
	defaultLearningRate = 0.01
	defaultGuardBand    = 100
	defaultSeed         = 1
)

// DefaultAmplitudes are the noise fractions studied when none are configured.
var DefaultAmplitudes = []float64{0.05, 0.25, 0.5}

// Config holds batch parameters.
type Config struct {
	Amplitudes     []float64
	Order          int
	LearningRate   float64
	GuardBand      int
	ReferenceDelay int
	Passthrough    bool
	Seed           int64
	Workers        int
	Deadline       time.Duration
	PairTimeout    time.Duration
	Retries        int
	Sink           Sink
	Logger         logrus.FieldLogger
}

// Option mutates batch configuration.
type Option func(*Config)

// DefaultConfig returns the batch defaults.
func DefaultConfig() Config {
	return Config{
		Amplitudes:   append([]float64(nil), DefaultAmplitudes...),
		Order:        defaultOrder,
		LearningRate: defaultLearningRate,
		GuardBand:    defaultGuardBand,
		Seed:         defaultSeed,
		Workers:      runtime.NumCPU(),
		Logger:       logrus.StandardLogger(),
	}
}

// WithAmplitudes sets the noise fractions. Values outside (0,1) are dropped;
// an empty result keeps the previous setting.
func WithAmplitudes(fractions ...float64) Option {
	return func(cfg *Config) {
		kept := make([]float64, 0, len(fractions))
		for _, f := range fractions {
			if f > 0 && f < 1 {
				kept = append(kept, f)
			}
		}
		if len(kept) > 0 {
			cfg.Amplitudes = kept
		}
	}
}

// WithOrder sets the LMS filter order.
func WithOrder(order int) Option {
	return func(cfg *Config) {
		if order > 0 {
			cfg.Order = order
		}
	}
}

// WithLearningRate sets the LMS step size.
func WithLearningRate(rate float64) Option {
	return func(cfg *Config) {
		if rate > 0 && rate < 1 {
			cfg.LearningRate = rate
		}
	}
}

// WithGuardBand sets the number of trailing samples left unadapted.
func WithGuardBand(samples int) Option {
	return func(cfg *Config) {
		if samples >= 0 {
			cfg.GuardBand = samples
		}
	}
}

// WithReferenceDelay shifts the LMS reference window into the past.
func WithReferenceDelay(samples int) Option {
	return func(cfg *Config) {
		if samples >= 0 {
			cfg.ReferenceDelay = samples
		}
	}
}

// WithPassthrough copies unadapted samples from the noisy input instead of
// leaving them zero.
func WithPassthrough() Option {
	return func(cfg *Config) {
		cfg.Passthrough = true
	}
}

// WithSeed sets the base seed that per-pair noise seeds are derived from.
func WithSeed(seed int64) Option {
	return func(cfg *Config) {
		cfg.Seed = seed
	}
}

// WithWorkers bounds the number of pairs processed concurrently.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithDeadline bounds the whole batch.
func WithDeadline(d time.Duration) Option {
	return func(cfg *Config) {
		if d > 0 {
			cfg.Deadline = d
		}
	}
}

// WithPairTimeout bounds one attempt at one pair.
func WithPairTimeout(d time.Duration) Option {
	return func(cfg *Config) {
		if d > 0 {
			cfg.PairTimeout = d
		}
	}
}

// WithRetries sets how often a timed-out pair is retried.
func WithRetries(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.Retries = n
		}
	}
}

// WithSink persists the noisy, filtered and injected-noise signals of every
// successful pair. The stored reference is the noise as mixed in, i.e. the
// unit-variance reference times the synthesis scale.
func WithSink(s Sink) Option {
	return func(cfg *Config) {
		cfg.Sink = s
	}
}

// WithLogger replaces the standard logrus logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// ApplyOptions applies opts over DefaultConfig.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
