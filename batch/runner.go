package batch

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"sync"
	"time"

	"github.com/cwbudde/algo-anc/dsp/buffer"
	"github.com/cwbudde/algo-anc/dsp/core"
	"github.com/cwbudde/algo-anc/dsp/filter/lms"
	"github.com/cwbudde/algo-anc/dsp/signal"
	"github.com/cwbudde/algo-anc/measure/residual"
	"github.com/sirupsen/logrus"
)

// Runner executes batches with a fixed configuration.
type Runner struct {
	loader Loader
	cfg    Config
}

// NewRunner returns a Runner reading clean recordings from loader.
func NewRunner(loader Loader, opts ...Option) (*Runner, error) {
	if loader == nil {
		return nil, fmt.Errorf("batch: loader is nil: %w", core.ErrInvalidInput)
	}
	return &Runner{loader: loader, cfg: ApplyOptions(opts...)}, nil
}

// Config returns the runner's effective configuration.
func (r *Runner) Config() Config {
	cfg := r.cfg
	cfg.Amplitudes = append([]float64(nil), r.cfg.Amplitudes...)
	return cfg
}

type pair struct {
	index     int
	id        RecordingID
	amplitude float64
}

type indexedReport struct {
	index  int
	report Report
}

// Run processes every recording at every configured amplitude. The returned
// Result is complete even when pairs fail; Run returns ErrBatchFailed when
// none succeeded.
func (r *Runner) Run(ctx context.Context, recordings []RecordingID) (*Result, error) {
	if len(recordings) == 0 {
		return nil, fmt.Errorf("batch: no recordings: %w", core.ErrInvalidInput)
	}

	if r.cfg.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Deadline)
		defer cancel()
	}

	pairs := make([]pair, 0, len(recordings)*len(r.cfg.Amplitudes))
	for _, id := range recordings {
		for _, amp := range r.cfg.Amplitudes {
			pairs = append(pairs, pair{index: len(pairs), id: id, amplitude: amp})
		}
	}

	log := r.cfg.Logger.WithFields(logrus.Fields{
		"function": "Run",
		"pairs":    len(pairs),
		"workers":  r.cfg.Workers,
	})
	log.Info("Starting batch")

	workers := min(r.cfg.Workers, len(pairs))
	jobs := make(chan pair)
	results := make(chan indexedReport)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				results <- indexedReport{index: p.index, report: r.runPair(ctx, p)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range pairs {
			jobs <- p
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	res := &Result{Reports: make([]Report, len(pairs))}
	for ir := range results {
		res.Reports[ir.index] = ir.report
	}

	succeeded := res.Succeeded()
	log.WithFields(logrus.Fields{
		"succeeded": succeeded,
		"failed":    len(pairs) - succeeded,
	}).Info("Batch finished")

	if succeeded == 0 {
		return res, ErrBatchFailed
	}
	return res, nil
}

// runPair processes one pair, retrying attempts that time out while the
// batch context is still live.
func (r *Runner) runPair(ctx context.Context, p pair) Report {
	log := r.cfg.Logger.WithFields(logrus.Fields{
		"function":  "runPair",
		"recording": p.id.String(),
		"amplitude": p.amplitude,
		"index":     p.index,
	})

	start := time.Now()
	rep := Report{Recording: p.id, AmplitudeFraction: p.amplitude}

	for {
		if err := ctx.Err(); err != nil {
			rep.Err = err
			break
		}
		rep.Attempts++

		rep.Err = r.attempt(ctx, p, &rep)
		if rep.Err == nil {
			break
		}
		err := rep.Err

		if KindOf(err) == KindTimeout && ctx.Err() == nil && rep.Attempts <= r.cfg.Retries {
			log.WithFields(logrus.Fields{
				"attempt": rep.Attempts,
				"error":   err.Error(),
			}).Warn("Pair timed out, retrying")
			continue
		}
		break
	}

	rep.Elapsed = time.Since(start)
	rep.Kind = KindOf(rep.Err)
	if rep.Err != nil {
		log.WithFields(logrus.Fields{
			"kind":  string(rep.Kind),
			"error": rep.Err.Error(),
		}).Warn("Pair failed")
		return rep
	}

	log.WithFields(logrus.Fields{
		"percent_noisy":    rep.PercentErrorNoisy,
		"percent_filtered": rep.PercentErrorFiltered,
	}).Debug("Pair completed")
	return rep
}

func (r *Runner) attempt(ctx context.Context, p pair, rep *Report) error {
	if r.cfg.PairTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.PairTimeout)
		defer cancel()
	}

	clean, err := r.loader.Load(ctx, p.id)
	if err != nil {
		return fmt.Errorf("load %s: %w", p.id, err)
	}

	profile, err := signal.NewProfile(p.amplitude)
	if err != nil {
		return err
	}
	synth := signal.NewSynthesizer(signal.WithSeed(PairSeed(r.cfg.Seed, p.id, p.amplitude)))
	noise, noisy, err := synth.Synthesize(clean, profile)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}

	filtered, err := lms.FilterContext(ctx, noisy, noise, r.cfg.Order, r.cfg.LearningRate, r.filterOptions()...)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	if err := r.score(clean, noisy, filtered.Filtered, rep); err != nil {
		return err
	}

	if r.cfg.Sink == nil {
		return nil
	}
	// The stored reference is the injected noise component.
	injected, err := signal.Scaled(noise, signal.Scale(clean, profile))
	if err != nil {
		return fmt.Errorf("scale reference: %w", err)
	}
	stages := []struct {
		stage Stage
		buf   *buffer.Buffer
	}{
		{StageNoisy, noisy},
		{StageFiltered, filtered.Filtered},
		{StageNoiseReference, injected},
	}
	for _, s := range stages {
		if err := r.cfg.Sink.Store(ctx, p.id, p.amplitude, s.stage, s.buf); err != nil {
			return fmt.Errorf("store %s: %w", s.stage, err)
		}
	}
	return nil
}

func (r *Runner) filterOptions() []lms.Option {
	opts := []lms.Option{
		lms.WithGuardBand(r.cfg.GuardBand),
		lms.WithReferenceDelay(r.cfg.ReferenceDelay),
	}
	if r.cfg.Passthrough {
		opts = append(opts, lms.WithPassthrough())
	}
	return opts
}

func (r *Runner) score(clean, noisy, filtered *buffer.Buffer, rep *Report) error {
	noisyErr, err := residual.Analyze(clean.Samples(), noisy.Samples())
	if err != nil {
		return fmt.Errorf("analyze noisy: %w", err)
	}
	filteredErr, err := residual.Analyze(clean.Samples(), filtered.Samples())
	if err != nil {
		return fmt.Errorf("analyze filtered: %w", err)
	}
	snrNoisy, err := residual.SNR(clean.Samples(), noisy.Samples())
	if err != nil {
		return fmt.Errorf("snr noisy: %w", err)
	}
	snrFiltered, err := residual.SNR(clean.Samples(), filtered.Samples())
	if err != nil {
		return fmt.Errorf("snr filtered: %w", err)
	}
	lsdNoisy, err := residual.LogSpectralDistance(clean.Samples(), noisy.Samples(), 0)
	if err != nil {
		return fmt.Errorf("lsd noisy: %w", err)
	}
	lsdFiltered, err := residual.LogSpectralDistance(clean.Samples(), filtered.Samples(), 0)
	if err != nil {
		return fmt.Errorf("lsd filtered: %w", err)
	}

	rep.PercentErrorNoisy = noisyErr.Percent
	rep.PercentErrorFiltered = filteredErr.Percent
	rep.CoercedNaN = noisyErr.CoercedNaN + filteredErr.CoercedNaN
	rep.SNRNoisy = snrNoisy
	rep.SNRFiltered = snrFiltered
	rep.LSDNoisy = lsdNoisy
	rep.LSDFiltered = lsdFiltered
	return nil
}

// PairSeed derives the noise seed of one pair from the base seed, so a pair
// draws the same noise regardless of scheduling.
func PairSeed(base int64, id RecordingID, amplitude float64) int64 {
	h := fnv.New64a()
	h.Write([]byte(id.Sentence))
	h.Write([]byte{0})
	h.Write([]byte(id.Name))
	h.Write([]byte{0})

	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(amplitude))
	h.Write(b[:])

	return base ^ int64(h.Sum64())
}

