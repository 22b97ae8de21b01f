package codec

import (
	"fmt"

	"github.com/cwbudde/algo-anc/dsp/core"
)

// Error describes a failed decode or encode of one file.
type Error struct {
	Op   string // "decode" or "encode"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("codec: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both the taxonomy sentinel and the cause.
func (e *Error) Unwrap() []error {
	kind := core.ErrDecode
	if e.Op == opEncode {
		kind = core.ErrEncode
	}
	return []error{kind, e.Err}
}

const (
	opDecode = "decode"
	opEncode = "encode"
)

func decodeErr(path string, err error) error {
	return &Error{Op: opDecode, Path: path, Err: err}
}

func encodeErr(path string, err error) error {
	return &Error{Op: opEncode, Path: path, Err: err}
}
