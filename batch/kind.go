package batch

import (
	"context"
	"errors"

	"github.com/cwbudde/algo-anc/dsp/core"
)

// Kind classifies why a pair failed.
type Kind string

const (
	KindNone         Kind = ""
	KindInvalidInput Kind = "invalid_input"
	KindDecode       Kind = "decode"
	KindEncode       Kind = "encode"
	KindDivergence   Kind = "divergence"
	KindTimeout      Kind = "timeout"
	KindCanceled     Kind = "canceled"
	KindUnknown      Kind = "unknown"
)

// KindOf maps err onto the error taxonomy.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, core.ErrDivergence):
		return KindDivergence
	case errors.Is(err, core.ErrDecode):
		return KindDecode
	case errors.Is(err, core.ErrEncode):
		return KindEncode
	case errors.Is(err, core.ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindUnknown
	}
}
