package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-anc/codec"
	"github.com/cwbudde/algo-anc/dsp/buffer"
	"github.com/cwbudde/algo-anc/dsp/core"
	"github.com/cwbudde/algo-anc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, filepath.Join("dir", "take_10_noisy_filtered.wav"), defaultOutput(filepath.Join("dir", "take_10_noisy.wav")))
	assert.Equal(t, "take_filtered.wav", defaultOutput("take.flac"))
}

func writeClean(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clean.wav")
	buf := buffer.FromSamples(8000, testutil.DeterministicSine(300, 8000, 8000, n))
	require.NoError(t, codec.Encode(buf, path))
	return path
}

func TestScoreLengthMismatch(t *testing.T) {
	path := writeClean(t, 1000)
	noisy := buffer.FromSamples(8000, testutil.GaussianNoise(1, 100, 1200))

	var out bytes.Buffer
	err := score(&out, path, noisy, noisy)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, out.String())
}

func TestScoreMissingClean(t *testing.T) {
	noisy := buffer.FromSamples(8000, []float64{1, 2, 3})
	err := score(&bytes.Buffer{}, filepath.Join(t.TempDir(), "absent.wav"), noisy, noisy)
	assert.ErrorIs(t, err, core.ErrDecode)
}

func TestScoreReportsAllMetrics(t *testing.T) {
	path := writeClean(t, 2048)
	clean, err := codec.Decode(path)
	require.NoError(t, err)
	noisy := buffer.FromSamples(8000, testutil.Add(clean.Samples(), testutil.GaussianNoise(2, 1, 2048), 800))

	var out bytes.Buffer
	require.NoError(t, score(&out, path, noisy, clean))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "noisy:")
	assert.Contains(t, string(lines[0]), "dB LSD")
	assert.Contains(t, string(lines[1]), "+Inf dB SNR")
	assert.Contains(t, string(lines[1]), "0.00 dB LSD")
}
