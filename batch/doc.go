// Package batch runs the noise-cancellation pipeline over many recordings.
//
// A [Runner] expands recordings × amplitude fractions into pairs. For each
// pair it loads the clean recording, synthesizes seeded Gaussian noise,
// filters the noisy mixture with LMS using the injected noise as reference,
// and scores noisy and filtered output against the original. Pairs run on a
// bounded worker pool; a failing pair is recorded with its error [Kind] and
// the batch continues. With a [Sink], the noisy, filtered and injected-noise
// signals of each successful pair are persisted.
package batch
