// Package residual scores how closely a processed signal matches a
// reference ("accepted") signal.
//
// The headline metric is [PercentError], the mean per-sample relative error
// in percent, rounded to a whole percent:
//
//	err[i] = |a[i] - e[i]| / |a[i]| * 100   (0 where a[i] == 0)
//
// NaN samples in either input are treated as 0 before comparison; [Analyze]
// reports how many samples were coerced so the substitution is visible.
//
// Secondary metrics cover the same comparison from other angles:
//   - MSE and MeanAbsError: absolute residual energy and magnitude
//   - SNR: reference power over residual power, in dB
//   - LogSpectralDistance: framewise RMS difference of log power spectra
package residual
