// Package codec reads and writes mono audio files as [buffer.Buffer] values.
//
// Decoding picks a format by file extension: .wav through go-audio/wav and
// .flac through mewkiz/flac. Only the first channel of multi-channel files
// is kept, and samples are rescaled to a 16-bit range; 8-bit WAV is
// re-centred around zero. WAV files must hold integer PCM. Encoding always
// writes 16-bit mono PCM WAV.
//
// Failures are returned as [*Error], which matches core.ErrDecode or
// core.ErrEncode under errors.Is as well as the underlying cause.
package codec
