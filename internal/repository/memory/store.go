// Package memory is an in-process storage backend. Every call, and every
// RunTx as a whole, runs under one store-wide lock, so transactions are
// trivially serializable. A failed transaction is unwound from an undo log.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
)

type state struct {
	films    map[int64]domain.Film
	halls    map[int64]domain.Hall
	seats    map[int64][]domain.Seat
	sessions map[int64]domain.Session
	bookings map[int64]domain.Booking
	users    map[int64]domain.User

	lastFilm    int64
	lastSession int64
	lastBooking int64
	lastUser    int64
}

type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		st: &state{
			films:    make(map[int64]domain.Film),
			halls:    make(map[int64]domain.Hall),
			seats:    make(map[int64][]domain.Seat),
			sessions: make(map[int64]domain.Session),
			bookings: make(map[int64]domain.Booking),
			users:    make(map[int64]domain.User),
		},
		now: time.Now,
	}
}

// txn collects compensating actions for the mutations made so far.
type txn struct {
	undo []func()
}

func (t *txn) onRollback(fn func()) { t.undo = append(t.undo, fn) }

func (t *txn) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

// RunTx must not be nested: the inner call would wait on the lock its
// caller already holds.
func (s *Store) RunTx(
	ctx context.Context,
	_ repository.TxOptions,
	fn func(ctx context.Context, tx repository.Repos) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txn{}
	if err := fn(ctx, repos{s: s, tx: tx}); err != nil {
		tx.rollback()
		return err
	}

	return nil
}

// exec runs fn either inside the caller's transaction or, for repositories
// bound to the store, as its own single-statement transaction.
func (s *Store) exec(tx *txn, fn func(st *state, tx *txn) error) error {
	if tx != nil {
		return fn(s.st, tx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	own := &txn{}
	if err := fn(s.st, own); err != nil {
		own.rollback()
		return err
	}

	return nil
}

func (s *Store) Close() {}

func (s *Store) Films() repository.FilmRepo       { return repos{s: s}.Films() }
func (s *Store) Halls() repository.HallRepo       { return repos{s: s}.Halls() }
func (s *Store) Sessions() repository.SessionRepo { return repos{s: s}.Sessions() }
func (s *Store) Bookings() repository.BookingRepo { return repos{s: s}.Bookings() }
func (s *Store) Users() repository.UserRepo       { return repos{s: s}.Users() }
func (s *Store) Reports() repository.ReportRepo   { return &ReportRepo{s: s} }

type repos struct {
	s  *Store
	tx *txn
}

func (r repos) Films() repository.FilmRepo       { return &FilmRepo{s: r.s, tx: r.tx} }
func (r repos) Halls() repository.HallRepo       { return &HallRepo{s: r.s, tx: r.tx} }
func (r repos) Sessions() repository.SessionRepo { return &SessionRepo{s: r.s, tx: r.tx} }
func (r repos) Bookings() repository.BookingRepo { return &BookingRepo{s: r.s, tx: r.tx} }
func (r repos) Users() repository.UserRepo       { return &UserRepo{s: r.s, tx: r.tx} }
