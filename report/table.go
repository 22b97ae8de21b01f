package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-anc/batch"
)

// Table writes one row per pair followed by the per-sentence summary.
func Table(w io.Writer, res *batch.Result) error {
	if err := Pairs(w, res); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return SummaryTable(w, res)
}

// Pairs writes one row per pair.
func Pairs(w io.Writer, res *batch.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Sentence\tRecording\tNoise [%%]\tNoisy Err [%%]\tFiltered Err [%%]\tNoisy SNR [dB]\tFiltered SNR [dB]\tNoisy LSD [dB]\tFiltered LSD [dB]\tStatus\n"); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "--------\t---------\t---------\t-------------\t----------------\t--------------\t-----------------\t--------------\t-----------------\t------\n"); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}

	for _, rep := range res.Reports {
		var err error
		if rep.OK() {
			_, err = fmt.Fprintf(tw, "%s\t%s\t%g\t%.0f\t%.0f\t%.2f\t%.2f\t%.2f\t%.2f\tok\n",
				rep.Recording.Sentence,
				rep.Recording.Name,
				rep.AmplitudeFraction*100,
				rep.PercentErrorNoisy,
				rep.PercentErrorFiltered,
				rep.SNRNoisy,
				rep.SNRFiltered,
				rep.LSDNoisy,
				rep.LSDFiltered,
			)
		} else {
			_, err = fmt.Fprintf(tw, "%s\t%s\t%g\t-\t-\t-\t-\t-\t-\t%s: %v\n",
				rep.Recording.Sentence,
				rep.Recording.Name,
				rep.AmplitudeFraction*100,
				rep.Kind,
				rep.Err,
			)
		}
		if err != nil {
			return fmt.Errorf("report: write row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("report: flush: %w", err)
	}
	return nil
}

// SummaryTable writes the mean errors per sentence and amplitude.
func SummaryTable(w io.Writer, res *batch.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Sentence\tNoise [%%]\tOK\tFailed\tMean Noisy Err [%%]\tMean Filtered Err [%%]\tMean Noisy SNR [dB]\tMean Filtered SNR [dB]\tMean Noisy LSD [dB]\tMean Filtered LSD [dB]\n"); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "--------\t---------\t--\t------\t------------------\t---------------------\t-------------------\t----------------------\t-------------------\t----------------------\n"); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}

	for _, s := range res.Summary() {
		if _, err := fmt.Fprintf(tw, "%s\t%g\t%d\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			s.Sentence,
			s.AmplitudeFraction*100,
			s.Recordings,
			s.Failed,
			s.MeanPercentErrorNoisy,
			s.MeanPercentErrorFiltered,
			s.MeanSNRNoisy,
			s.MeanSNRFiltered,
			s.MeanLSDNoisy,
			s.MeanLSDFiltered,
		); err != nil {
			return fmt.Errorf("report: write row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("report: flush: %w", err)
	}
	return nil
}
