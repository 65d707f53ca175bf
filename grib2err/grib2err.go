// Package grib2err defines the error taxonomy shared across the
// assembler, reader, and index packages. Errors are surfaced to the
// caller synchronously; the state machine in package assemble does not
// attempt partial rollback of a half-added section.
package grib2err

import (
	"errors"
	"fmt"

	perrors "github.com/pkg/errors"
)

// Kind is one of the abstract error kinds the library distinguishes.
type Kind int

const (
	_ Kind = iota
	NotInitialized
	AlreadyComplete
	BadPredecessorSection
	InternalLengthMismatch
	UnsupportedTemplate
	MissingGridDefinition
	MissingPriorBitmap
	SphericalHarmonicGDTRequired
	PackingFailed
	OutOfRange
	IndexIOError
	DataIOError
	NotFound
)

func (k Kind) String() string {
	switch k {
	case NotInitialized:
		return "NotInitialized"
	case AlreadyComplete:
		return "AlreadyComplete"
	case BadPredecessorSection:
		return "BadPredecessorSection"
	case InternalLengthMismatch:
		return "InternalLengthMismatch"
	case UnsupportedTemplate:
		return "UnsupportedTemplate"
	case MissingGridDefinition:
		return "MissingGridDefinition"
	case MissingPriorBitmap:
		return "MissingPriorBitmap"
	case SphericalHarmonicGDTRequired:
		return "SphericalHarmonicGDTRequired"
	case PackingFailed:
		return "PackingFailed"
	case OutOfRange:
		return "OutOfRange"
	case IndexIOError:
		return "IndexIOError"
	case DataIOError:
		return "DataIOError"
	case NotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with the operation that raised it and, where
// available, the underlying cause (carrying a stack trace when
// constructed via New/Wrap).
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error with the same Kind, so callers
// can do errors.Is(err, grib2err.New(grib2err.NotFound, "", nil)) or,
// more idiomatically, errors.As plus a Kind comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error for op/kind, wrapping cause with a stack trace
// via github.com/pkg/errors when cause is non-nil.
func New(kind Kind, op string, cause error) *Error {
	if cause != nil {
		cause = perrors.Wrap(cause, op)
	}
	return &Error{Kind: kind, Op: op, Err: cause}
}

// Of reports the Kind of err if it is (or wraps) a *Error, and ok=false
// otherwise.
func Of(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
