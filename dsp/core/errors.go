package core

import "errors"

// Error taxonomy shared by all packages. Concrete errors wrap one of these so
// callers can classify failures with errors.Is.
var (
	// ErrInvalidInput marks malformed parameters or mismatched lengths.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDecode marks a failure to read an audio file.
	ErrDecode = errors.New("decode failed")
	// ErrEncode marks a failure to write an audio file.
	ErrEncode = errors.New("encode failed")
	// ErrDivergence marks numerical instability during adaptation.
	ErrDivergence = errors.New("adaptive filter diverged")
)
