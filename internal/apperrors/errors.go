package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind is the closed set of failure categories the services report.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindForbidden
	KindSplitMismatch
	KindNotFound
	KindConflict
	KindUnauthorized
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindForbidden:
		return "forbidden"
	case KindSplitMismatch:
		return "split mismatch"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindPersistence:
		return "persistence failure"
	default:
		return "unknown"
	}
}

// Error carries a Kind plus a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the per-kind sentinels, so errors.Is(err, ErrForbidden) works
// for every forbidden error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrInvalidInput  = &Error{Kind: KindInvalidInput}
	ErrForbidden     = &Error{Kind: KindForbidden}
	ErrSplitMismatch = &Error{Kind: KindSplitMismatch}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrConflict      = &Error{Kind: KindConflict}
	ErrUnauthorized  = &Error{Kind: KindUnauthorized}
	ErrPersistence   = &Error{Kind: KindPersistence}
)

func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Persistence wraps a store failure. The message stays generic; the cause is
// kept for logs via Unwrap.
func Persistence(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: op + ": storage unavailable", Err: err}
}

// MismatchError reports a split total that does not reconcile with the
// amount it must add up to.
type MismatchError struct {
	Subject  string
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s (%s) does not match expected total (%s)",
		e.Subject, e.Actual.StringFixed(2), e.Expected.StringFixed(2))
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrSplitMismatch
}

func SplitMismatch(subject string, expected, actual decimal.Decimal) *MismatchError {
	return &MismatchError{Subject: subject, Expected: expected, Actual: actual}
}

// KindOf returns the Kind of the first typed error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var mismatch *MismatchError
	if errors.As(err, &mismatch) {
		return KindSplitMismatch
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
