package layout

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cwbudde/algo-anc/batch"
	"github.com/cwbudde/algo-anc/codec"
	"github.com/cwbudde/algo-anc/dsp/buffer"
	"github.com/cwbudde/algo-anc/dsp/core"
	"github.com/sirupsen/logrus"
)

const (
	originalDir = "_0riginal"
	audioDir    = "audio"
)

// Tree is a sentence-grouped recording tree rooted at a directory.
type Tree struct {
	root string
	log  logrus.FieldLogger
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger replaces the standard logrus logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Tree) {
		if l != nil {
			t.log = l
		}
	}
}

// New returns a Tree rooted at root.
func New(root string, opts ...Option) *Tree {
	t := &Tree{root: root, log: logrus.StandardLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Root returns the tree's root directory.
func (t *Tree) Root() string {
	return t.root
}

// Percent converts an amplitude fraction to the whole percent used in
// directory and file names.
func Percent(amplitude float64) int {
	return int(math.Round(amplitude * 100))
}

// Sentences lists the sentence directories that hold an original audio
// directory, sorted by name.
func (t *Tree) Sentences() ([]string, error) {
	entries, err := os.ReadDir(t.root)
	if err != nil {
		return nil, fmt.Errorf("layout: list sentences: %w", err)
	}

	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := os.Stat(t.originalAudioDir(e.Name()))
		if err != nil || !info.IsDir() {
			t.log.WithFields(logrus.Fields{
				"function": "Sentences",
				"sentence": e.Name(),
			}).Debug("Skipping directory without original audio")
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}

// Recordings lists the decodable original recordings of a sentence, sorted
// by file name. RecordingID.Name is the file name including extension.
func (t *Tree) Recordings(sentence string) ([]batch.RecordingID, error) {
	entries, err := os.ReadDir(t.originalAudioDir(sentence))
	if err != nil {
		return nil, fmt.Errorf("layout: list recordings of %s: %w", sentence, err)
	}

	var out []batch.RecordingID
	for _, e := range entries {
		if e.IsDir() || !codec.Supported(e.Name()) {
			continue
		}
		out = append(out, batch.RecordingID{Sentence: sentence, Name: e.Name()})
	}
	return out, nil
}

// All lists the recordings of every sentence.
func (t *Tree) All() ([]batch.RecordingID, error) {
	sentences, err := t.Sentences()
	if err != nil {
		return nil, err
	}

	var out []batch.RecordingID
	for _, s := range sentences {
		recs, err := t.Recordings(s)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sentence != out[j].Sentence {
			return out[i].Sentence < out[j].Sentence
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Path returns the file of one stage. amplitude is ignored for
// batch.StageOriginal.
func (t *Tree) Path(id batch.RecordingID, amplitude float64, stage batch.Stage) (string, error) {
	if id.Sentence == "" || id.Name == "" {
		return "", fmt.Errorf("layout: incomplete recording id %q: %w", id, core.ErrInvalidInput)
	}
	if stage == batch.StageOriginal {
		return filepath.Join(t.originalAudioDir(id.Sentence), id.Name), nil
	}

	dir, suffix, ok := stageNames(stage)
	if !ok {
		return "", fmt.Errorf("layout: unknown stage %s: %w", stage, core.ErrInvalidInput)
	}
	if !(amplitude > 0 && amplitude < 1) {
		return "", fmt.Errorf("layout: amplitude must be in (0,1): %f: %w", amplitude, core.ErrInvalidInput)
	}

	pct := Percent(amplitude)
	stem := strings.TrimSuffix(id.Name, filepath.Ext(id.Name))
	name := fmt.Sprintf("%s_%d_%s.wav", stem, pct, suffix)
	return filepath.Join(t.root, id.Sentence, fmt.Sprintf("_%d_percent", pct), dir, name), nil
}

// Load decodes the original recording.
func (t *Tree) Load(ctx context.Context, id batch.RecordingID) (*buffer.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := t.Path(id, 0, batch.StageOriginal)
	if err != nil {
		return nil, err
	}
	return codec.Decode(path)
}

// Store encodes buf at the stage's path, creating directories as needed.
func (t *Tree) Store(ctx context.Context, id batch.RecordingID, amplitude float64, stage batch.Stage, buf *buffer.Buffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if stage == batch.StageOriginal {
		return fmt.Errorf("layout: refusing to overwrite original %s: %w", id, core.ErrInvalidInput)
	}

	path, err := t.Path(id, amplitude, stage)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &codec.Error{Op: "encode", Path: path, Err: err}
	}
	if err := codec.Encode(buf, path); err != nil {
		return err
	}

	t.log.WithFields(logrus.Fields{
		"function":  "Store",
		"recording": id.String(),
		"amplitude": amplitude,
		"stage":     stage.String(),
		"path":      path,
	}).Debug("Stored stage")
	return nil
}

// Exists reports whether the stage's file is present.
func (t *Tree) Exists(id batch.RecordingID, amplitude float64, stage batch.Stage) (bool, error) {
	path, err := t.Path(id, amplitude, stage)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (t *Tree) originalAudioDir(sentence string) string {
	return filepath.Join(t.root, sentence, originalDir, audioDir)
}

func stageNames(stage batch.Stage) (dir, suffix string, ok bool) {
	switch stage {
	case batch.StageNoisy:
		return "noisy", "noisy", true
	case batch.StageFiltered:
		return "filtered", "filtered", true
	case batch.StageNoiseReference:
		return "noise_references", "noise_ref", true
	default:
		return "", "", false
	}
}

var (
	_ batch.Loader = (*Tree)(nil)
	_ batch.Sink   = (*Tree)(nil)
)
