package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
	"github.com/shopspring/decimal"
)

type UserRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *UserRepo) With(db DB) *UserRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *UserRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const userColumns = `id, login, password_hash, role, full_name, email, phone, balance, created_at`

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	const op = "postgres.UserRepo.Create"

	var id int64
	err := r.handle().QueryRow(ctx,
		`INSERT INTO users(login, password_hash, role, full_name, email, phone, balance)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		u.Login, u.PasswordHash, string(u.Role), u.FullName, u.Email, u.Phone, u.Balance,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	const op = "postgres.UserRepo.Get"

	u, err := scanUser(r.handle().QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return u, nil
}

func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	const op = "postgres.UserRepo.GetByLogin"

	u, err := scanUser(r.handle().QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE login = $1`,
		login,
	))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return u, nil
}

// Debit is a single conditional update, so two concurrent debits can never
// both pass the balance check against the same stale value.
func (r *UserRepo) Debit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	const op = "postgres.UserRepo.Debit"

	db := r.handle()

	var balance decimal.Decimal
	err := db.QueryRow(ctx,
		`UPDATE users SET balance = balance - $2
		 WHERE id = $1 AND balance >= $2
		 RETURNING balance`,
		userID, amount,
	).Scan(&balance)
	if err == nil {
		return balance, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`,
		userID,
	).Scan(&exists); err != nil {
		return decimal.Zero, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if !exists {
		return decimal.Zero, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return decimal.Zero, fmt.Errorf("%s:%w", op, repository.ErrInsufficientFunds)
}

func (r *UserRepo) Credit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	const op = "postgres.UserRepo.Credit"

	var balance decimal.Decimal
	err := r.handle().QueryRow(ctx,
		`UPDATE users SET balance = balance + $2
		 WHERE id = $1
		 RETURNING balance`,
		userID, amount,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return balance, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var role string

	if err := row.Scan(
		&u.ID, &u.Login, &u.PasswordHash, &role, &u.FullName,
		&u.Email, &u.Phone, &u.Balance, &u.CreatedAt,
	); err != nil {
		return nil, err
	}

	u.Role = domain.Role(role)

	return &u, nil
}
