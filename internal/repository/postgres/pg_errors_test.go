package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kirinyoku/cinego/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestTranslateDBErr(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, repository.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), repository.ErrNotFound},
		{"unique", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraintActiveSeat}, repository.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: codeForeignKeyViolation}, repository.ErrInUse},
		{"balance check", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: constraintBalance}, repository.ErrInsufficientFunds},
		{"other", boom, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateDBErr(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslateDBErr_OtherCheckPassesThrough(t *testing.T) {
	in := &pgconn.PgError{Code: codeCheckViolation, ConstraintName: "films_duration_min_check"}

	got := translateDBErr(in)

	assert.Same(t, in, got)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pgconn.PgError{Code: codeSerialization}))
	assert.True(t, IsRetryable(fmt.Errorf("commit: %w", &pgconn.PgError{Code: codeDeadlock})))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: codeUniqueViolation}))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestViolates(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraintTicketNumber})

	assert.True(t, violates(err, constraintTicketNumber))
	assert.False(t, violates(err, constraintActiveSeat))
}
