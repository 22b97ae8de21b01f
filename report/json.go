package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-anc/batch"
)

// Document is the JSON form of a batch result.
type Document struct {
	Pairs   []Pair    `json:"pairs"`
	Summary []Summary `json:"summary"`
}

// Pair is the JSON form of one batch.Report. Non-finite SNR values are
// encoded as null.
type Pair struct {
	Sentence             string   `json:"sentence"`
	Recording            string   `json:"recording"`
	AmplitudeFraction    float64  `json:"amplitude_fraction"`
	PercentErrorNoisy    *float64 `json:"percent_error_noisy,omitempty"`
	PercentErrorFiltered *float64 `json:"percent_error_filtered,omitempty"`
	SNRNoisy             *float64 `json:"snr_noisy_db,omitempty"`
	SNRFiltered          *float64 `json:"snr_filtered_db,omitempty"`
	LSDNoisy             *float64 `json:"lsd_noisy_db,omitempty"`
	LSDFiltered          *float64 `json:"lsd_filtered_db,omitempty"`
	CoercedNaN           int      `json:"coerced_nan"`
	Attempts             int      `json:"attempts"`
	ElapsedMS            float64  `json:"elapsed_ms"`
	Kind                 string   `json:"kind,omitempty"`
	Error                string   `json:"error,omitempty"`
}

// Summary is the JSON form of one batch.Summary.
type Summary struct {
	Sentence                 string   `json:"sentence"`
	AmplitudeFraction        float64  `json:"amplitude_fraction"`
	Recordings               int      `json:"recordings"`
	Failed                   int      `json:"failed"`
	MeanPercentErrorNoisy    float64  `json:"mean_percent_error_noisy"`
	MeanPercentErrorFiltered float64  `json:"mean_percent_error_filtered"`
	MeanSNRNoisy             *float64 `json:"mean_snr_noisy_db"`
	MeanSNRFiltered          *float64 `json:"mean_snr_filtered_db"`
	MeanLSDNoisy             *float64 `json:"mean_lsd_noisy_db"`
	MeanLSDFiltered          *float64 `json:"mean_lsd_filtered_db"`
}

// NewDocument converts res into its JSON form.
func NewDocument(res *batch.Result) Document {
	doc := Document{
		Pairs:   make([]Pair, 0, len(res.Reports)),
		Summary: []Summary{},
	}
	for _, rep := range res.Reports {
		p := Pair{
			Sentence:          rep.Recording.Sentence,
			Recording:         rep.Recording.Name,
			AmplitudeFraction: rep.AmplitudeFraction,
			Attempts:          rep.Attempts,
			ElapsedMS:         float64(rep.Elapsed.Microseconds()) / 1000,
		}
		if rep.OK() {
			p.PercentErrorNoisy = finite(rep.PercentErrorNoisy)
			p.PercentErrorFiltered = finite(rep.PercentErrorFiltered)
			p.SNRNoisy = finite(rep.SNRNoisy)
			p.SNRFiltered = finite(rep.SNRFiltered)
			p.LSDNoisy = finite(rep.LSDNoisy)
			p.LSDFiltered = finite(rep.LSDFiltered)
			p.CoercedNaN = rep.CoercedNaN
		} else {
			p.Kind = string(rep.Kind)
			p.Error = rep.Err.Error()
		}
		doc.Pairs = append(doc.Pairs, p)
	}
	for _, s := range res.Summary() {
		doc.Summary = append(doc.Summary, Summary{
			Sentence:                 s.Sentence,
			AmplitudeFraction:        s.AmplitudeFraction,
			Recordings:               s.Recordings,
			Failed:                   s.Failed,
			MeanPercentErrorNoisy:    s.MeanPercentErrorNoisy,
			MeanPercentErrorFiltered: s.MeanPercentErrorFiltered,
			MeanSNRNoisy:             finite(s.MeanSNRNoisy),
			MeanSNRFiltered:          finite(s.MeanSNRFiltered),
			MeanLSDNoisy:             finite(s.MeanLSDNoisy),
			MeanLSDFiltered:          finite(s.MeanLSDFiltered),
		})
	}
	return doc
}

// JSON writes res as an indented JSON document.
func JSON(w io.Writer, res *batch.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(res)); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
