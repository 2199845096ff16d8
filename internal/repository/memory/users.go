package memory

import (
	"context"
	"fmt"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
	"github.com/shopspring/decimal"
)

type UserRepo struct {
	s  *Store
	tx *txn
}

func (r *UserRepo) Create(_ context.Context, u *domain.User) (int64, error) {
	const op = "memory.UserRepo.Create"

	var id int64
	err := r.s.exec(r.tx, func(st *state, tx *txn) error {
		for _, other := range st.users {
			if other.Login == u.Login {
				return fmt.Errorf("%s:%w", op, repository.ErrConflict)
			}
		}
		if u.Balance.IsNegative() {
			return fmt.Errorf("%s:%w", op, repository.ErrInsufficientFunds)
		}

		st.lastUser++
		id = st.lastUser

		stored := *u
		stored.ID = id
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = r.s.now()
		}
		if stored.Role == "" {
			stored.Role = domain.RoleCustomer
		}
		st.users[id] = stored
		tx.onRollback(func() { delete(st.users, id) })

		return nil
	})

	return id, err
}

func (r *UserRepo) Get(_ context.Context, id int64) (*domain.User, error) {
	const op = "memory.UserRepo.Get"

	var out domain.User
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		u, ok := st.users[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *UserRepo) GetByLogin(_ context.Context, login string) (*domain.User, error) {
	const op = "memory.UserRepo.GetByLogin"

	var out domain.User
	err := r.s.exec(r.tx, func(st *state, _ *txn) error {
		for _, u := range st.users {
			if u.Login == login {
				out = u
				return nil
			}
		}
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *UserRepo) Debit(_ context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	const op = "memory.UserRepo.Debit"

	var balance decimal.Decimal
	err := r.s.exec(r.tx, func(st *state, tx *txn) error {
		prev, ok := st.users[userID]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		if prev.Balance.LessThan(amount) {
			return fmt.Errorf("%s:%w", op, repository.ErrInsufficientFunds)
		}

		next := prev
		next.Balance = prev.Balance.Sub(amount)
		st.users[userID] = next
		tx.onRollback(func() { st.users[userID] = prev })

		balance = next.Balance
		return nil
	})

	return balance, err
}

func (r *UserRepo) Credit(_ context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	const op = "memory.UserRepo.Credit"

	var balance decimal.Decimal
	err := r.s.exec(r.tx, func(st *state, tx *txn) error {
		prev, ok := st.users[userID]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}

		next := prev
		next.Balance = prev.Balance.Add(amount)
		st.users[userID] = next
		tx.onRollback(func() { st.users[userID] = prev })

		balance = next.Balance
		return nil
	})

	return balance, err
}
