package lms

const (
	// DefaultGuardBand is the number of trailing samples left unadapted.
	DefaultGuardBand = 100
	// DefaultDivergenceLimit bounds |error| and |coefficient| before a run
	// is reported as diverged.
	DefaultDivergenceLimit = 1e15
)

// Config holds optional filter settings.
type Config struct {
	// GuardBand is the number of samples at the end of the buffer that are
	// not processed.
	GuardBand int
	// ReferenceDelay shifts the input window back in time. With 0 the window
	// ends at the current reference sample; with 1 it ends one sample
	// earlier.
	ReferenceDelay int
	// Passthrough copies unprocessed head and tail samples from the noisy
	// input instead of leaving them at zero.
	Passthrough bool
	// DivergenceLimit is the magnitude above which error or coefficients
	// count as unbounded.
	DivergenceLimit float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the settings used when no options are given.
func DefaultConfig() Config {
	return Config{
		GuardBand:       DefaultGuardBand,
		DivergenceLimit: DefaultDivergenceLimit,
	}
}

// WithGuardBand sets the trailing margin in samples. Negative values are ignored.
func WithGuardBand(samples int) Option {
	return func(cfg *Config) {
		if samples >= 0 {
			cfg.GuardBand = samples
		}
	}
}

// WithReferenceDelay sets how many samples the input window lags the
// current sample. Negative values are ignored.
func WithReferenceDelay(samples int) Option {
	return func(cfg *Config) {
		if samples >= 0 {
			cfg.ReferenceDelay = samples
		}
	}
}

// WithPassthrough fills unprocessed samples from the noisy input.
func WithPassthrough() Option {
	return func(cfg *Config) {
		cfg.Passthrough = true
	}
}

// WithDivergenceLimit sets the divergence threshold. Non-positive values are ignored.
func WithDivergenceLimit(limit float64) Option {
	return func(cfg *Config) {
		if limit > 0 {
			cfg.DivergenceLimit = limit
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
