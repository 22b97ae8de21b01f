// Command ancbatch runs noise synthesis, LMS filtering and error analysis
// over a whole recording tree.
//
// Usage:
//
//	ancbatch [flags]
//
// The tree layout is:
//
//	<root>/<sentence>/_0riginal/audio/<recording>.wav
//
// Noisy, filtered and noise reference files are written next to the
// originals under _<pct>_percent/ unless -dry-run is given.
//
// Examples:
//
//	ancbatch -root Data
//	ancbatch -root Data -amps 0.1,0.3 -order 32 -rate 0.005
//	ancbatch -root Data -format json -dry-run
//	ancbatch -root Data -skip-existing
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/cwbudde/algo-anc/batch"
	"github.com/cwbudde/algo-anc/layout"
	"github.com/cwbudde/algo-anc/report"
	"github.com/sirupsen/logrus"
)

func main() {
	root := flag.String("root", "Data", "root directory of the recording tree")
	amps := flag.String("amps", "0.05,0.25,0.5", "comma-separated noise amplitude fractions in (0,1)")
	order := flag.Int("order", 100, "LMS filter order")
	rate := flag.Float64("rate", 0.01, "LMS learning rate in (0,1)")
	guard := flag.Int("guard", 100, "trailing samples left unadapted")
	delay := flag.Int("delay", 0, "reference window delay in samples")
	passthrough := flag.Bool("passthrough", false, "copy unadapted samples from the noisy input instead of zero-filling")
	seed := flag.Int64("seed", 1, "base seed for noise synthesis")
	workers := flag.Int("workers", runtime.NumCPU(), "pairs processed concurrently")
	deadline := flag.Duration("deadline", 0, "time limit for the whole batch (0 = none)")
	pairTimeout := flag.Duration("pair-timeout", 0, "time limit for one pair (0 = none)")
	retries := flag.Int("retries", 0, "retries for a pair that timed out")
	format := flag.String("format", "table", "output format: table or json")
	dryRun := flag.Bool("dry-run", false, "do not write noisy/filtered/reference files")
	skipExisting := flag.Bool("skip-existing", false, "skip recordings whose filtered files exist for every amplitude")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ancbatch [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Adds noise to every recording of a tree, cancels it with an LMS filter\n")
		fmt.Fprintf(os.Stderr, "and reports the residual error per recording and amplitude.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ancbatch -root Data\n")
		fmt.Fprintf(os.Stderr, "  ancbatch -root Data -amps 0.1,0.3 -order 32 -rate 0.005\n")
		fmt.Fprintf(os.Stderr, "  ancbatch -root Data -format json -dry-run\n")
		fmt.Fprintf(os.Stderr, "  ancbatch -root Data -skip-existing\n")
	}
	flag.Parse()

	log := logrus.WithFields(logrus.Fields{"function": "main"})
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Invalid log level")
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	if *format != "table" && *format != "json" {
		log.WithField("format", *format).Fatal("Unknown output format")
	}

	fractions, err := parseAmplitudes(*amps)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Invalid amplitudes")
	}

	tree := layout.New(*root)
	ids, err := tree.All()
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Could not list recordings")
	}
	if len(ids) == 0 {
		log.WithField("root", tree.Root()).Fatal("No recordings found")
	}
	if *skipExisting {
		total := len(ids)
		ids, err = pending(tree, ids, fractions)
		if err != nil {
			log.WithField("error", err.Error()).Fatal("Could not check existing outputs")
		}
		log.WithFields(logrus.Fields{
			"root":    tree.Root(),
			"skipped": total - len(ids),
		}).Info("Skipping processed recordings")
		if len(ids) == 0 {
			return
		}
	}

	opts := []batch.Option{
		batch.WithAmplitudes(fractions...),
		batch.WithOrder(*order),
		batch.WithLearningRate(*rate),
		batch.WithGuardBand(*guard),
		batch.WithReferenceDelay(*delay),
		batch.WithSeed(*seed),
		batch.WithWorkers(*workers),
		batch.WithDeadline(*deadline),
		batch.WithPairTimeout(*pairTimeout),
		batch.WithRetries(*retries),
	}
	if *passthrough {
		opts = append(opts, batch.WithPassthrough())
	}
	if !*dryRun {
		opts = append(opts, batch.WithSink(tree))
	}

	runner, err := batch.NewRunner(tree, opts...)
	if err != nil {
		log.WithField("error", err.Error()).Fatal("Could not create runner")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, runErr := runner.Run(ctx, ids)
	if res != nil {
		if err := writeReport(*format, res); err != nil {
			log.WithField("error", err.Error()).Error("Could not write report")
		}
	}
	if runErr != nil {
		log.WithField("error", runErr.Error()).Error("Batch failed")
		if errors.Is(runErr, batch.ErrBatchFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func writeReport(format string, res *batch.Result) error {
	if format == "json" {
		return report.JSON(os.Stdout, res)
	}
	return report.Table(os.Stdout, res)
}

// pending returns the recordings that lack a filtered file for at least one
// amplitude.
func pending(tree *layout.Tree, ids []batch.RecordingID, amps []float64) ([]batch.RecordingID, error) {
	var out []batch.RecordingID
	for _, id := range ids {
		for _, amp := range amps {
			ok, err := tree.Exists(id, amp, batch.StageFiltered)
			if err != nil {
				return nil, err
			}
			if !ok {
				out = append(out, id)
				break
			}
		}
	}
	return out, nil
}

func parseAmplitudes(s string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("amplitude %q: %w", field, err)
		}
		if !(v > 0 && v < 1) {
			return nil, fmt.Errorf("amplitude %g must be in (0,1)", v)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errors.New("no amplitudes given")
	}
	return out, nil
}
