// Package buffer provides the mono sample buffer passed between the noise
// synthesizer, the adaptive filter and the error analyzer.
//
// Samples are held as float64 while processing. Conversion to signed 16-bit
// PCM happens only at persistence boundaries through [Buffer.PCM16], which
// rounds and saturates. Processing functions never mutate a Buffer they did
// not create; they return a new one.
package buffer
