package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
)

type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const bookingColumns = `id, user_id, session_id, row_no, seat_no, status, amount, ticket_number, created_at, cancelled_at`

// Insert relies on the partial unique index over active bookings: a second
// active booking for the same seat fails with ErrConflict no matter how the
// callers interleave. A taken ticket number is absorbed by ON CONFLICT so the
// transaction stays usable and ErrDuplicateTicket is returned.
func (r *BookingRepo) Insert(ctx context.Context, b *domain.Booking) (int64, error) {
	const op = "postgres.BookingRepo.Insert"

	var id int64
	err := r.handle().QueryRow(ctx,
		`INSERT INTO bookings(user_id, session_id, row_no, seat_no, status, amount, ticket_number, created_at)
		 VALUES ($1, $2, $3, $4, 'active', $5, $6, $7)
		 ON CONFLICT ON CONSTRAINT `+constraintTicketNumber+` DO NOTHING
		 RETURNING id`,
		b.UserID, b.SessionID, b.Row, b.Seat, b.Amount, b.TicketNumber, b.CreatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || violates(err, constraintTicketNumber) {
			return 0, fmt.Errorf("%s:%w", op, repository.ErrDuplicateTicket)
		}
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *BookingRepo) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.Get"

	b, err := scanBooking(r.handle().QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return b, nil
}

func (r *BookingRepo) Cancel(ctx context.Context, id int64, at time.Time) (bool, error) {
	const op = "postgres.BookingRepo.Cancel"

	tag, err := r.handle().Exec(ctx,
		`UPDATE bookings
		 SET status = 'cancelled', cancelled_at = $2
		 WHERE id = $1 AND status = 'active'`,
		id, at,
	)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepo) ActiveBySession(ctx context.Context, sessionID int64) ([]domain.Booking, error) {
	const op = "postgres.BookingRepo.ActiveBySession"

	rows, err := r.handle().Query(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 WHERE session_id = $1 AND status = 'active'
		 ORDER BY row_no, seat_no`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *BookingRepo) ActiveBySeat(ctx context.Context, sessionID int64, row, seat int) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.ActiveBySeat"

	b, err := scanBooking(r.handle().QueryRow(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 WHERE session_id = $1 AND row_no = $2 AND seat_no = $3 AND status = 'active'`,
		sessionID, row, seat,
	))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return b, nil
}

func (r *BookingRepo) CountBySession(ctx context.Context, sessionID int64) (int64, error) {
	const op = "postgres.BookingRepo.CountBySession"

	var n int64
	err := r.handle().QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE session_id = $1`,
		sessionID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return n, nil
}

func (r *BookingRepo) ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	const op = "postgres.BookingRepo.ListByUser"

	rows, err := r.handle().Query(ctx,
		`SELECT b.id, b.ticket_number, b.session_id, f.title, s.starts_at, h.name,
		        b.row_no, b.seat_no, b.amount, b.status, b.created_at
		 FROM bookings b
		 JOIN sessions s ON s.id = b.session_id
		 JOIN films f ON f.id = s.film_id
		 JOIN halls h ON h.id = s.hall_id
		 WHERE b.user_id = $1
		 ORDER BY s.starts_at DESC, b.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.BookingDetail
	for rows.Next() {
		var d domain.BookingDetail
		var status string

		if err := rows.Scan(
			&d.ID, &d.TicketNumber, &d.SessionID, &d.FilmTitle, &d.StartsAt, &d.HallName,
			&d.Row, &d.Seat, &d.Amount, &status, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		d.Status = domain.BookingStatus(status)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *BookingRepo) TicketInfo(ctx context.Context, bookingID int64) (*domain.TicketInfo, error) {
	const op = "postgres.BookingRepo.TicketInfo"

	var t domain.TicketInfo
	var seatType, status string

	err := r.handle().QueryRow(ctx,
		`SELECT b.id, b.user_id, b.ticket_number,
		        f.title, f.genre, f.duration_min, f.age_rating,
		        s.starts_at, s.ends_at, h.name,
		        b.row_no, b.seat_no, st.seat_type,
		        b.amount, b.status, b.created_at, u.full_name
		 FROM bookings b
		 JOIN sessions s ON s.id = b.session_id
		 JOIN films f ON f.id = s.film_id
		 JOIN halls h ON h.id = s.hall_id
		 JOIN seats st ON st.hall_id = s.hall_id AND st.row_no = b.row_no AND st.seat_no = b.seat_no
		 JOIN users u ON u.id = b.user_id
		 WHERE b.id = $1`,
		bookingID,
	).Scan(
		&t.BookingID, &t.UserID, &t.TicketNumber,
		&t.FilmTitle, &t.Genre, &t.DurationMin, &t.AgeRating,
		&t.StartsAt, &t.EndsAt, &t.HallName,
		&t.Row, &t.Seat, &seatType,
		&t.Amount, &status, &t.BookedAt, &t.BuyerName,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	t.SeatType = domain.SeatType(seatType)
	t.Status = domain.BookingStatus(status)

	return &t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var status string

	if err := row.Scan(
		&b.ID, &b.UserID, &b.SessionID, &b.Row, &b.Seat, &status,
		&b.Amount, &b.TicketNumber, &b.CreatedAt, &b.CancelledAt,
	); err != nil {
		return nil, err
	}

	b.Status = domain.BookingStatus(status)

	return &b, nil
}

var _ repository.BookingRepo = (*BookingRepo)(nil)
