package batch

import (
	"sort"
	"time"
)

// Report is the outcome of one (recording, amplitude) pair.
type Report struct {
	Recording         RecordingID
	AmplitudeFraction float64

	// Percent errors of noisy and filtered signals against the original.
	PercentErrorNoisy    float64
	PercentErrorFiltered float64
	// CoercedNaN counts NaN samples treated as zero across both comparisons.
	CoercedNaN int

	SNRNoisy    float64
	SNRFiltered float64

	// Log-spectral distances in dB of noisy and filtered signals against the
	// original.
	LSDNoisy    float64
	LSDFiltered float64

	Attempts int
	Elapsed  time.Duration

	Kind Kind
	Err  error
}

// OK reports whether the pair completed.
func (r Report) OK() bool {
	return r.Err == nil
}

// Result holds one Report per pair in input order: recordings outer,
// amplitudes inner.
type Result struct {
	Reports []Report
}

// Succeeded returns the number of completed pairs.
func (r *Result) Succeeded() int {
	n := 0
	for _, rep := range r.Reports {
		if rep.OK() {
			n++
		}
	}
	return n
}

// Failed returns the failed pairs.
func (r *Result) Failed() []Report {
	var out []Report
	for _, rep := range r.Reports {
		if !rep.OK() {
			out = append(out, rep)
		}
	}
	return out
}

// Summary aggregates one sentence at one amplitude.
type Summary struct {
	Sentence          string
	AmplitudeFraction float64
	Recordings        int
	Failed            int

	MeanPercentErrorNoisy    float64
	MeanPercentErrorFiltered float64
	MeanSNRNoisy             float64
	MeanSNRFiltered          float64
	MeanLSDNoisy             float64
	MeanLSDFiltered          float64
}

type summaryKey struct {
	sentence  string
	amplitude float64
}

// Summary averages successful reports per (sentence, amplitude), sorted by
// sentence then amplitude. Means are zero for groups without successes.
func (r *Result) Summary() []Summary {
	groups := make(map[summaryKey]*Summary)
	for _, rep := range r.Reports {
		key := summaryKey{rep.Recording.Sentence, rep.AmplitudeFraction}
		s, ok := groups[key]
		if !ok {
			s = &Summary{Sentence: key.sentence, AmplitudeFraction: key.amplitude}
			groups[key] = s
		}
		if !rep.OK() {
			s.Failed++
			continue
		}
		s.Recordings++
		s.MeanPercentErrorNoisy += rep.PercentErrorNoisy
		s.MeanPercentErrorFiltered += rep.PercentErrorFiltered
		s.MeanSNRNoisy += rep.SNRNoisy
		s.MeanSNRFiltered += rep.SNRFiltered
		s.MeanLSDNoisy += rep.LSDNoisy
		s.MeanLSDFiltered += rep.LSDFiltered
	}

	out := make([]Summary, 0, len(groups))
	for _, s := range groups {
		if s.Recordings > 0 {
			n := float64(s.Recordings)
			s.MeanPercentErrorNoisy /= n
			s.MeanPercentErrorFiltered /= n
			s.MeanSNRNoisy /= n
			s.MeanSNRFiltered /= n
			s.MeanLSDNoisy /= n
			s.MeanLSDFiltered /= n
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sentence != out[j].Sentence {
			return out[i].Sentence < out[j].Sentence
		}
		return out[i].AmplitudeFraction < out[j].AmplitudeFraction
	})
	return out
}
