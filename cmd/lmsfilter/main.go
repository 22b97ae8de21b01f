// Command lmsfilter removes reference-correlated noise from one recording
// with an LMS adaptive filter.
//
// Usage:
//
//	lmsfilter [flags] noisy.wav reference.wav
//
// The reference is normalized to unit RMS before filtering unless
// -normalize-ref=false is given, so references stored at any level work with
// the same learning rate. The output defaults to <noisy>_filtered.wav. With
// -clean the original recording is compared against the noisy and filtered
// signals.
//
// Examples:
//
//	lmsfilter noisy.wav noise_ref.wav
//	lmsfilter -order 32 -rate 0.005 -clean speech.wav noisy.wav noise_ref.wav
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cwbudde/algo-anc/codec"
	"github.com/cwbudde/algo-anc/dsp/buffer"
	"github.com/cwbudde/algo-anc/dsp/filter/lms"
	dspsignal "github.com/cwbudde/algo-anc/dsp/signal"
	"github.com/cwbudde/algo-anc/measure/residual"
	"github.com/sirupsen/logrus"
)

func main() {
	order := flag.Int("order", 100, "filter order")
	rate := flag.Float64("rate", 0.01, "learning rate in (0,1)")
	guard := flag.Int("guard", lms.DefaultGuardBand, "trailing samples left unadapted")
	delay := flag.Int("delay", 0, "reference window delay in samples")
	passthrough := flag.Bool("passthrough", false, "copy unadapted samples from the noisy input instead of zero-filling")
	normalizeRef := flag.Bool("normalize-ref", true, "scale the reference to unit RMS before filtering")
	out := flag.String("out", "", "output file (default <noisy>_filtered.wav)")
	clean := flag.String("clean", "", "optional clean recording to score against")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lmsfilter [flags] noisy.wav reference.wav\n\n")
		fmt.Fprintf(os.Stderr, "Cancels noise correlated with the reference using an LMS filter.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logrus.WithFields(logrus.Fields{"function": "main"})
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Invalid log level")
	}
	logrus.SetLevel(level)

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	noisyPath, refPath := flag.Arg(0), flag.Arg(1)
	if *out == "" {
		*out = defaultOutput(noisyPath)
	}

	noisy, err := codec.Decode(noisyPath)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Could not read noisy input")
	}
	reference, err := codec.Decode(refPath)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Could not read reference")
	}
	if *normalizeRef {
		reference, err = dspsignal.Normalize(reference)
		if err != nil {
			log.WithField("error", err.Error()).Fatal("Could not normalize reference")
		}
	}

	opts := []lms.Option{
		lms.WithGuardBand(*guard),
		lms.WithReferenceDelay(*delay),
	}
	if *passthrough {
		opts = append(opts, lms.WithPassthrough())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := lms.FilterContext(ctx, noisy, reference, *order, *rate, opts...)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Filtering failed")
	}
	if err := codec.Encode(res.Filtered, *out); err != nil {
		log.WithField("error", err.Error()).Fatal("Could not write output")
	}

	log.WithFields(logrus.Fields{
		"output": *out,
		"start":  res.Start,
		"end":    res.End,
		"order":  res.State.Order,
	}).Info("Wrote filtered recording")

	if *clean != "" {
		if err := score(os.Stdout, *clean, noisy, res.Filtered); err != nil {
			log.WithField("error", err.Error()).Fatal("Could not score output")
		}
	}
}

func defaultOutput(noisyPath string) string {
	return strings.TrimSuffix(noisyPath, filepath.Ext(noisyPath)) + "_filtered.wav"
}

type metrics struct {
	percent float64
	snr     float64
	lsd     float64
}

func measure(clean, processed []float64) (metrics, error) {
	var (
		m   metrics
		err error
	)
	if m.percent, err = residual.PercentError(clean, processed); err != nil {
		return m, err
	}
	if m.snr, err = residual.SNR(clean, processed); err != nil {
		return m, err
	}
	if m.lsd, err = residual.LogSpectralDistance(clean, processed, 0); err != nil {
		return m, err
	}
	return m, nil
}

func score(w io.Writer, cleanPath string, noisy, filtered *buffer.Buffer) error {
	clean, err := codec.Decode(cleanPath)
	if err != nil {
		return err
	}
	if err := buffer.SameShape(clean, noisy); err != nil {
		return err
	}

	n, err := measure(clean.Samples(), noisy.Samples())
	if err != nil {
		return err
	}
	f, err := measure(clean.Samples(), filtered.Samples())
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "noisy:    %3.0f%% error  %6.2f dB SNR  %6.2f dB LSD\n", n.percent, n.snr, n.lsd); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "filtered: %3.0f%% error  %6.2f dB SNR  %6.2f dB LSD\n", f.percent, f.snr, f.lsd)
	return err
}
