package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindSeatUnavailable   ErrorKind = "seat_unavailable"
	KindInsufficientFunds ErrorKind = "insufficient_funds"
	KindScheduleConflict  ErrorKind = "schedule_conflict"
	KindValidation        ErrorKind = "validation"
	KindInUse             ErrorKind = "in_use"
)

// Error is a domain failure the caller can act on. Anything that is not an
// *Error (storage unreachable, driver bugs) is unexpected.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrSeatUnavailable   = &Error{Kind: KindSeatUnavailable}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds}
	ErrScheduleConflict  = &Error{Kind: KindScheduleConflict}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrInUse             = &Error{Kind: KindInUse}
)

func newError(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return newError(KindNotFound, format, args...)
}

func SeatUnavailablef(format string, args ...any) error {
	return newError(KindSeatUnavailable, format, args...)
}

func InsufficientFundsf(format string, args ...any) error {
	return newError(KindInsufficientFunds, format, args...)
}

func ScheduleConflictf(format string, args ...any) error {
	return newError(KindScheduleConflict, format, args...)
}

func Validationf(format string, args ...any) error {
	return newError(KindValidation, format, args...)
}

func InUsef(format string, args ...any) error {
	return newError(KindInUse, format, args...)
}

// AsError extracts the domain error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
