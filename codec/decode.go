package codec

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-anc/dsp/buffer"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
)

var (
	errUnsupportedExt = errors.New("unsupported file extension")
	errInvalidWAV     = errors.New("invalid WAV header")
	errNoSamples      = errors.New("file holds no samples")
	errNotPCM         = errors.New("WAV data is not integer PCM")
)

// Decode loads the first channel of an audio file.
func Decode(path string) (*buffer.Buffer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(path)
	case ".flac":
		return decodeFLAC(path)
	default:
		return nil, decodeErr(path, fmt.Errorf("%w: %q", errUnsupportedExt, filepath.Ext(path)))
	}
}

// Supported reports whether Decode handles the file's extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".flac":
		return true
	}
	return false
}

func decodeWAV(path string) (*buffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, decodeErr(path, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, decodeErr(path, errInvalidWAV)
	}
	if d.WavAudioFormat != wavFormatPCM && d.WavAudioFormat != wavFormatExtensible {
		return nil, decodeErr(path, fmt.Errorf("%w: format tag %d", errNotPCM, d.WavAudioFormat))
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, decodeErr(path, fmt.Errorf("could not read PCM buffer: %w", err))
	}
	if pcm.Format == nil || pcm.Format.NumChannels < 1 {
		return nil, decodeErr(path, errInvalidWAV)
	}

	channels := pcm.Format.NumChannels
	frames := len(pcm.Data) / channels
	if frames == 0 {
		return nil, decodeErr(path, errNoSamples)
	}

	gain := depthGain(pcm.SourceBitDepth)
	offset := 0.0
	if pcm.SourceBitDepth == 8 {
		// 8-bit WAV is unsigned with silence at 128.
		offset = 128
	}
	out := buffer.New(pcm.Format.SampleRate, frames)
	dst := out.Samples()
	for i := range dst {
		dst[i] = (float64(pcm.Data[i*channels]) - offset) * gain
	}
	return out, nil
}

func decodeFLAC(path string) (*buffer.Buffer, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, decodeErr(path, err)
	}
	defer stream.Close()

	gain := depthGain(int(stream.Info.BitsPerSample))
	var samples []float64
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, decodeErr(path, fmt.Errorf("could not parse frame: %w", err))
		}
		if len(frame.Subframes) == 0 {
			continue
		}
		for _, s := range frame.Subframes[0].Samples {
			samples = append(samples, float64(s)*gain)
		}
	}
	if len(samples) == 0 {
		return nil, decodeErr(path, errNoSamples)
	}

	out := buffer.FromSamples(int(stream.Info.SampleRate), samples)
	return out, nil
}

// depthGain rescales integer samples of the given bit depth to 16-bit range.
func depthGain(bitDepth int) float64 {
	if bitDepth <= 0 || bitDepth == 16 {
		return 1
	}
	return math.Ldexp(1, 16-bitDepth)
}
