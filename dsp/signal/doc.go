// Package signal synthesizes the noise used to corrupt clean recordings.
//
// A [Synthesizer] owns an explicit pseudo-random source so runs are
// reproducible for a given seed. [Synthesizer.Synthesize] draws one standard
// normal sample per input sample, scales it by the profile's amplitude
// fraction times the clean signal's peak, and adds it to the clean signal.
// The unscaled noise is returned as well: it is the reference the adaptive
// filter is given. [Scaled] turns it into the injected noise component and
// [Normalize] brings a stored reference back to unit power.
package signal
