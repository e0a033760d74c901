package decode

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory reports that an allocation for the output buffer or
	// a code bank failed.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrPrematureEOF reports that more input was needed but the
	// compressed buffer was exhausted.
	ErrPrematureEOF = errors.New("premature end of input")

	// ErrInvalid reports a malformed stream.  Errors of this kind carry a
	// detail message and are matched with errors.Is(err, ErrInvalid).
	ErrInvalid = errors.New("invalid stream")

	// ErrMismatch reports that compare mode detected a divergence from
	// the expected output.
	ErrMismatch = errors.New("compare mismatch")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
