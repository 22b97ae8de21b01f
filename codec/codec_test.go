package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-anc/dsp/buffer"
	"github.com/cwbudde/algo-anc/dsp/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	pcm := []int16{0, 1, -1, 1000, -1000, 32767, -32768, 42}
	samples := make([]float64, len(pcm))
	for i, v := range pcm {
		samples[i] = float64(v)
	}
	in := buffer.FromSamples(16000, samples)

	require.NoError(t, Encode(in, path))

	out, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, 16000, out.SampleRate())
	assert.Equal(t, pcm, out.PCM16())
}

func TestEncodeSaturatesAndRounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loud.wav")
	in := buffer.FromSamples(8000, []float64{40000, -40000, 1.5, -2.5, 0.4})

	require.NoError(t, Encode(in, path))

	out, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, []int16{32767, -32768, 2, -3, 0}, out.PCM16())
}

func TestEncodeInvalidBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	err := Encode(buffer.New(8000, 0), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEncode)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "no file should be created")
}

func TestEncodeMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.wav")
	err := Encode(buffer.FromSamples(8000, []float64{1}), path)
	assert.ErrorIs(t, err, core.ErrEncode)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	garbageWAV := filepath.Join(dir, "garbage.wav")
	garbageFLAC := filepath.Join(dir, "garbage.flac")
	require.NoError(t, os.WriteFile(garbageWAV, []byte("not a riff file at all"), 0o600))
	require.NoError(t, os.WriteFile(garbageFLAC, []byte("not a flac stream"), 0o600))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.wav")},
		{"unsupported extension", filepath.Join(dir, "audio.mp3")},
		{"corrupt wav", garbageWAV},
		{"corrupt flac", garbageFLAC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrDecode)

			var cerr *Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.path, cerr.Path)
			assert.Equal(t, "decode", cerr.Op)
		})
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.wav"))
	assert.True(t, Supported("A.WAV"))
	assert.True(t, Supported("b.flac"))
	assert.False(t, Supported("c.mp3"))
	assert.False(t, Supported("noext"))
}

func TestDepthGain(t *testing.T) {
	assert.Equal(t, 1.0, depthGain(16))
	assert.Equal(t, 1.0, depthGain(0))
	assert.Equal(t, 256.0, depthGain(8))
	assert.Equal(t, 1.0/256, depthGain(24))
}

// rawWAV builds a mono WAV file with a canonical 44-byte header.
func rawWAV(format, bits uint16, rate uint32, data []byte) []byte {
	var b bytes.Buffer
	le := binary.LittleEndian
	blockAlign := bits / 8

	b.WriteString("RIFF")
	_ = binary.Write(&b, le, uint32(36+len(data)))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	_ = binary.Write(&b, le, uint32(16))
	_ = binary.Write(&b, le, format)
	_ = binary.Write(&b, le, uint16(1))
	_ = binary.Write(&b, le, rate)
	_ = binary.Write(&b, le, rate*uint32(blockAlign))
	_ = binary.Write(&b, le, blockAlign)
	_ = binary.Write(&b, le, bits)
	b.WriteString("data")
	_ = binary.Write(&b, le, uint32(len(data)))
	b.Write(data)
	return b.Bytes()
}

func TestDecode8BitCentred(t *testing.T) {
	path := filepath.Join(t.TempDir(), "u8.wav")
	data := []byte{128, 128, 128, 128, 0, 255}
	require.NoError(t, os.WriteFile(path, rawWAV(1, 8, 8000, data), 0o600))

	out, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, 8000, out.SampleRate())
	assert.Equal(t, []float64{0, 0, 0, 0, -32768, 32512}, out.Samples())
}

func TestDecodeRejectsFloatWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f32.wav")
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data[4:], 0x3f000000) // 0.5f
	require.NoError(t, os.WriteFile(path, rawWAV(3, 32, 8000, data), 0o600))

	_, err := Decode(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDecode)
}
