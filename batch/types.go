package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-anc/dsp/buffer"
)

// ErrBatchFailed is returned by Run when no pair succeeded.
var ErrBatchFailed = errors.New("batch: every pair failed")

// RecordingID names one clean recording inside a sentence group.
type RecordingID struct {
	Sentence string
	Name     string
}

func (id RecordingID) String() string {
	return id.Sentence + "/" + id.Name
}

// Stage identifies one signal of a processed pair.
type Stage int

const (
	StageOriginal Stage = iota
	StageNoisy
	StageFiltered
	StageNoiseReference
)

func (s Stage) String() string {
	switch s {
	case StageOriginal:
		return "original"
	case StageNoisy:
		return "noisy"
	case StageFiltered:
		return "filtered"
	case StageNoiseReference:
		return "noise_reference"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Loader returns the clean signal of a recording.
type Loader interface {
	Load(ctx context.Context, id RecordingID) (*buffer.Buffer, error)
}

// Sink persists one stage of a processed pair.
type Sink interface {
	Store(ctx context.Context, id RecordingID, amplitude float64, stage Stage, buf *buffer.Buffer) error
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, id RecordingID) (*buffer.Buffer, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, id RecordingID) (*buffer.Buffer, error) {
	return f(ctx, id)
}
