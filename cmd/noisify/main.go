// Command noisify adds seeded Gaussian noise to one recording.
//
// Usage:
//
//	noisify [flags] input.wav
//
// The noise is scaled to a fraction of the recording's peak amplitude. The
// output defaults to <input>_<pct>_noisy.wav next to the input; with -ref
// the injected noise is written as well, for use as an LMS reference.
//
// Examples:
//
//	noisify -amp 0.1 speech.wav
//	noisify -amp 0.25 -seed 7 -ref noise.wav -out noisy.wav speech.flac
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-anc/codec"
	"github.com/cwbudde/algo-anc/dsp/signal"
	"github.com/cwbudde/algo-anc/layout"
	timestats "github.com/cwbudde/algo-anc/stats/time"
	"github.com/sirupsen/logrus"
)

func main() {
	amp := flag.Float64("amp", 0.1, "noise amplitude as a fraction of peak, in (0,1)")
	seed := flag.Int64("seed", 1, "noise seed")
	out := flag.String("out", "", "output file (default <input>_<pct>_noisy.wav)")
	ref := flag.String("ref", "", "optional output file for the injected noise (LMS reference)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: noisify [flags] input.wav\n\n")
		fmt.Fprintf(os.Stderr, "Adds Gaussian noise scaled to a fraction of the input's peak.\n\n")
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

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	in := flag.Arg(0)
	if *out == "" {
		*out = defaultOutput(in, *amp)
	}

	profile, err := signal.NewProfile(*amp)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Invalid amplitude")
	}

	clean, err := codec.Decode(in)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Could not read input")
	}

	noise, noisy, err := signal.NewSynthesizer(signal.WithSeed(*seed)).Synthesize(clean, profile)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Could not synthesize noise")
	}

	if err := codec.Encode(noisy, *out); err != nil {
		log.WithField("error", err.Error()).Fatal("Could not write output")
	}
	if *ref != "" {
		injected, err := signal.Scaled(noise, signal.Scale(clean, profile))
		if err != nil {
			log.WithField("error", err.Error()).Fatal("Could not scale noise reference")
		}
		if err := codec.Encode(injected, *ref); err != nil {
			log.WithField("error", err.Error()).Fatal("Could not write noise reference")
		}
	}

	st := timestats.Calculate(clean.Samples())
	log.WithFields(logrus.Fields{
		"input":   in,
		"output":  *out,
		"samples": st.Length,
		"peak":    st.Peak,
		"rms":     st.RMS,
		"dc":      st.DC,
		"scale":   signal.Scale(clean, profile),
	}).Info("Wrote noisy recording")
}

func defaultOutput(in string, amp float64) string {
	stem := strings.TrimSuffix(in, filepath.Ext(in))
	return fmt.Sprintf("%s_%d_noisy.wav", stem, layout.Percent(amp))
}
