package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kirinyoku/cinego/internal/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeSerialization       = "40001"
	codeDeadlock            = "40P01"

	constraintActiveSeat   = "bookings_active_seat_uq"
	constraintTicketNumber = "bookings_ticket_number_uq"
	constraintBalance      = "users_balance_check"
)

func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerialization, codeDeadlock:
			return true
		}
	}

	return false
}

func translateDBErr(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		switch pge.Code {
		case codeUniqueViolation:
			return repository.ErrConflict
		case codeForeignKeyViolation:
			return repository.ErrInUse
		case codeCheckViolation:
			if pge.ConstraintName == constraintBalance {
				return repository.ErrInsufficientFunds
			}
		}
	}

	return err
}

func violates(err error, constraint string) bool {
	var pge *pgconn.PgError
	return errors.As(err, &pge) && pge.ConstraintName == constraint
}
