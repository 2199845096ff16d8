package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
)

type HallRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *HallRepo) With(db DB) *HallRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *HallRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// NextID must run inside a transaction: the table lock is what keeps two
// concurrent creators from picking the same id.
func (r *HallRepo) NextID(ctx context.Context) (int64, error) {
	const op = "postgres.HallRepo.NextID"

	db := r.handle()

	if _, err := db.Exec(ctx, `LOCK TABLE halls IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	var id int64
	if err := db.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM halls`).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *HallRepo) Create(ctx context.Context, h *domain.Hall) error {
	const op = "postgres.HallRepo.Create"

	_, err := r.handle().Exec(ctx,
		`INSERT INTO halls(id, name, rows_count, seats_per_row, vip, capacity)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		h.ID, h.Name, h.Rows, h.SeatsPerRow, h.VIP, h.Capacity,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

func (r *HallRepo) CreateSeats(ctx context.Context, seats []domain.Seat) error {
	const op = "postgres.HallRepo.CreateSeats"

	batch := &pgx.Batch{}
	for _, s := range seats {
		batch.Queue(
			`INSERT INTO seats(hall_id, row_no, seat_no, seat_type)
			 VALUES ($1, $2, $3, $4)`,
			s.HallID, s.Row, s.Number, string(s.Type),
		)
	}
	if err := r.handle().SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

func (r *HallRepo) Get(ctx context.Context, id int64) (*domain.Hall, error) {
	const op = "postgres.HallRepo.Get"

	var h domain.Hall
	err := r.handle().QueryRow(ctx,
		`SELECT id, name, rows_count, seats_per_row, vip, capacity
		 FROM halls WHERE id = $1`,
		id,
	).Scan(&h.ID, &h.Name, &h.Rows, &h.SeatsPerRow, &h.VIP, &h.Capacity)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &h, nil
}

func (r *HallRepo) List(ctx context.Context) ([]domain.Hall, error) {
	const op = "postgres.HallRepo.List"

	rows, err := r.handle().Query(ctx,
		`SELECT id, name, rows_count, seats_per_row, vip, capacity
		 FROM halls ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Hall
	for rows.Next() {
		var h domain.Hall
		if err := rows.Scan(&h.ID, &h.Name, &h.Rows, &h.SeatsPerRow, &h.VIP, &h.Capacity); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *HallRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgres.HallRepo.Delete"

	tag, err := r.handle().Exec(ctx, `DELETE FROM halls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *HallRepo) Seats(ctx context.Context, hallID int64) ([]domain.Seat, error) {
	const op = "postgres.HallRepo.Seats"

	rows, err := r.handle().Query(ctx,
		`SELECT hall_id, row_no, seat_no, seat_type
		 FROM seats
		 WHERE hall_id = $1
		 ORDER BY row_no, seat_no`,
		hallID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Seat
	for rows.Next() {
		var s domain.Seat
		var seatType string

		if err := rows.Scan(&s.HallID, &s.Row, &s.Number, &seatType); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		s.Type = domain.SeatType(seatType)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *HallRepo) Seat(ctx context.Context, hallID int64, row, number int) (*domain.Seat, error) {
	const op = "postgres.HallRepo.Seat"

	s := domain.Seat{HallID: hallID, Row: row, Number: number}
	var seatType string

	err := r.handle().QueryRow(ctx,
		`SELECT seat_type FROM seats
		 WHERE hall_id = $1 AND row_no = $2 AND seat_no = $3`,
		hallID, row, number,
	).Scan(&seatType)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	s.Type = domain.SeatType(seatType)

	return &s, nil
}
