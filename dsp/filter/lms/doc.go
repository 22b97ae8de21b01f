// Package lms provides an adaptive noise canceller built on the
// Least-Mean-Squares algorithm.
//
// [Filter] runs an adaptive transversal filter over a whole recording. At
// every sample n the `order` reference samples ending at n, inclusive, form
// the input vector x, the filter predicts the noise as w·x, and the
// prediction error
//
//	e[n] = d[n] - w·x
//
// is both the denoised output sample and the adaptation signal:
//
//	w += mu * e[n] * x
//
// The default window includes the current reference sample,
// reference[n-order+1 : n+1]. This differs from the textbook formulation that
// uses only past samples, reference[n-order : n], which cannot cancel white
// noise because the noise at n is uncorrelated with its past. Pass
// [WithReferenceDelay](1) to get the past-only window; larger delays shift the
// window further back and move the first adapted sample to order+delay-1.
//
// Coefficients start at zero and live only for one call. Samples before the
// first full window and inside the trailing guard band are not adapted; they
// are zero in the output unless [WithPassthrough] is given.
//
// Plain LMS is only stable for small step sizes relative to the reference
// power. A run whose error or coefficients leave the finite range, or exceed
// the configured divergence limit, stops with a [*DivergenceError].
package lms
