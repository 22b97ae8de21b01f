package codec

import (
	"os"

	"github.com/cwbudde/algo-anc/dsp/buffer"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth16          = 16
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// Encode writes buf to path as 16-bit mono PCM WAV, rounding and saturating
// samples. An existing file is truncated.
func Encode(buf *buffer.Buffer, path string) (err error) {
	if err := buffer.Validate(buf); err != nil {
		return encodeErr(path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return encodeErr(path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = encodeErr(path, cerr)
		}
	}()

	pcm := buf.PCM16()
	data := make([]int, len(pcm))
	for i, v := range pcm {
		data[i] = int(v)
	}

	enc := wav.NewEncoder(f, buf.SampleRate(), bitDepth16, 1, wavFormatPCM)
	if err := enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: buf.SampleRate()},
		Data:           data,
		SourceBitDepth: bitDepth16,
	}); err != nil {
		return encodeErr(path, err)
	}
	if err := enc.Close(); err != nil {
		return encodeErr(path, err)
	}
	return nil
}
