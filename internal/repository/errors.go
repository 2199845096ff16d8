package repository

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInUse             = errors.New("referenced by other rows")
	// ErrDuplicateTicket leaves the surrounding transaction usable; the
	// caller may retry with a fresh ticket number.
	ErrDuplicateTicket = errors.New("ticket number already issued")
)
