package tmd

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Every failure returned by this package wraps one of them;
// test with errors.Is.
var (
	// The event sequence violates an assumption of the assembler.
	ErrStructural = errors.New("structural error")
	// A construct is left open at the end of input.
	ErrUnterminated = errors.New("unterminated construct")
	// A construct, e.g. a list subtype, is not supported.
	ErrUnsupported = errors.New("unsupported construct")
	// An include reference reached a stage that cannot handle it.
	ErrUnresolvedInclude = errors.New("unresolved include")
)

func structuralf(format string, args ...any) error {
	return errors.Wrapf(ErrStructural, format, args...)
}

func unsupportedf(format string, args ...any) error {
	return errors.Wrapf(ErrUnsupported, format, args...)
}

// PosError attaches a source line to a scanner failure.
type PosError struct {
	Line int
	Err  error
}

func (e *PosError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *PosError) Unwrap() error {
	return e.Err
}
