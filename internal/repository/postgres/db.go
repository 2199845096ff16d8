package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/cinego/internal/repository"
)

const defaultTxRetries = 3

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type Store struct {
	pool    *pgxpool.Pool
	retries int
}

var _ repository.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:    pool,
		retries: defaultTxRetries,
	}
}

// RunTx runs fn in one transaction. Serialization failures and deadlocks
// re-run fn from scratch, so fn must not keep state between attempts.
func (s *Store) RunTx(
	ctx context.Context,
	opts repository.TxOptions,
	fn func(ctx context.Context, tx repository.Repos) error,
) error {
	const op = "postgres.Store.RunTx"

	txOpts := pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	}

	if opts.Serializable {
		txOpts.IsoLevel = pgx.Serializable
	}

	if opts.ReadOnly {
		txOpts.AccessMode = pgx.ReadOnly
	}

	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		err = s.runTxOnce(ctx, txOpts, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}

	return fmt.Errorf("%s: retries exhausted: %w", op, err)
}

func (s *Store) runTxOnce(
	ctx context.Context,
	opts pgx.TxOptions,
	fn func(ctx context.Context, tx repository.Repos) error,
) error {
	tx, err := s.pool.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	if err := fn(ctx, txRepos{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *Store) Close() { s.pool.Close() }

func (s *Store) Films() repository.FilmRepo       { return &FilmRepo{pool: s.pool} }
func (s *Store) Halls() repository.HallRepo       { return &HallRepo{pool: s.pool} }
func (s *Store) Sessions() repository.SessionRepo { return &SessionRepo{pool: s.pool} }
func (s *Store) Bookings() repository.BookingRepo { return &BookingRepo{pool: s.pool} }
func (s *Store) Users() repository.UserRepo       { return &UserRepo{pool: s.pool} }
func (s *Store) Reports() repository.ReportRepo   { return &ReportRepo{pool: s.pool} }

// txRepos hands out repositories bound to a single transaction.
type txRepos struct {
	db DB
}

func (t txRepos) Films() repository.FilmRepo       { return (&FilmRepo{}).With(t.db) }
func (t txRepos) Halls() repository.HallRepo       { return (&HallRepo{}).With(t.db) }
func (t txRepos) Sessions() repository.SessionRepo { return (&SessionRepo{}).With(t.db) }
func (t txRepos) Bookings() repository.BookingRepo { return (&BookingRepo{}).With(t.db) }
func (t txRepos) Users() repository.UserRepo       { return (&UserRepo{}).With(t.db) }
