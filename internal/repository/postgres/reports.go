package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/cinego/internal/domain"
)

// ReportRepo runs read-only aggregates. Sales figures are keyed by the
// session date and only ever count active bookings.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// periodArgs turns open bounds into NULLs so the SQL can use
// ($n::date IS NULL OR ...) guards.
func periodArgs(p domain.Period) (from, to any) {
	if !p.From.IsZero() {
		from = domain.DayOf(p.From)
	}
	if !p.To.IsZero() {
		to = domain.DayOf(p.To)
	}
	return from, to
}

const sessionInPeriod = `($1::date IS NULL OR s.starts_at::date >= $1::date)
	AND ($2::date IS NULL OR s.starts_at::date <= $2::date)`

func (r *ReportRepo) DailySales(ctx context.Context, day time.Time) ([]domain.SessionSales, error) {
	const op = "postgres.ReportRepo.DailySales"

	rows, err := r.pool.Query(ctx,
		`SELECT s.id, f.title, s.starts_at, h.name,
		        COUNT(b.id), COALESCE(SUM(b.amount), 0)
		 FROM sessions s
		 JOIN films f ON f.id = s.film_id
		 JOIN halls h ON h.id = s.hall_id
		 LEFT JOIN bookings b ON b.session_id = s.id AND b.status = 'active'
		 WHERE s.starts_at::date = $1::date
		 GROUP BY s.id, f.title, s.starts_at, h.name
		 ORDER BY s.starts_at, h.name`,
		domain.DayOf(day),
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SessionSales, error) {
		var s domain.SessionSales
		err := row.Scan(&s.SessionID, &s.FilmTitle, &s.StartsAt, &s.HallName, &s.Sold, &s.Revenue)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

func (r *ReportRepo) Sales(ctx context.Context, p domain.Period) ([]domain.SalesRow, error) {
	const op = "postgres.ReportRepo.Sales"

	from, to := periodArgs(p)

	rows, err := r.pool.Query(ctx,
		`SELECT s.starts_at::date AS day, f.title, h.name,
		        COUNT(b.id), COALESCE(SUM(b.amount), 0)
		 FROM bookings b
		 JOIN sessions s ON s.id = b.session_id
		 JOIN films f ON f.id = s.film_id
		 JOIN halls h ON h.id = s.hall_id
		 WHERE b.status = 'active' AND `+sessionInPeriod+`
		 GROUP BY day, f.title, h.name
		 ORDER BY day, f.title, h.name`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SalesRow, error) {
		var s domain.SalesRow
		err := row.Scan(&s.Date, &s.FilmTitle, &s.HallName, &s.Tickets, &s.Revenue)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

func (r *ReportRepo) TopFilms(ctx context.Context, p domain.Period, limit int) ([]domain.FilmRevenue, error) {
	const op = "postgres.ReportRepo.TopFilms"

	from, to := periodArgs(p)

	rows, err := r.pool.Query(ctx,
		`SELECT f.id, f.title, f.genre,
		        COUNT(b.id), COALESCE(SUM(b.amount), 0), COUNT(DISTINCT s.id)
		 FROM films f
		 JOIN sessions s ON s.film_id = f.id
		 LEFT JOIN bookings b ON b.session_id = s.id AND b.status = 'active'
		 WHERE `+sessionInPeriod+`
		 GROUP BY f.id, f.title, f.genre
		 ORDER BY COALESCE(SUM(b.amount), 0) DESC, f.title
		 LIMIT $3`,
		from, to, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FilmRevenue, error) {
		var f domain.FilmRevenue
		err := row.Scan(&f.FilmID, &f.Title, &f.Genre, &f.Tickets, &f.Revenue, &f.Sessions)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

func (r *ReportRepo) HallOccupancy(ctx context.Context, p domain.Period) ([]domain.HallOccupancy, error) {
	const op = "postgres.ReportRepo.HallOccupancy"

	from, to := periodArgs(p)

	rows, err := r.pool.Query(ctx,
		`SELECT h.id, h.name, h.capacity,
		        COUNT(DISTINCT s.id), COUNT(b.id), COALESCE(SUM(b.amount), 0)
		 FROM halls h
		 JOIN sessions s ON s.hall_id = h.id
		 LEFT JOIN bookings b ON b.session_id = s.id AND b.status = 'active'
		 WHERE `+sessionInPeriod+`
		 GROUP BY h.id, h.name, h.capacity
		 ORDER BY h.id`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.HallOccupancy, error) {
		var h domain.HallOccupancy
		if err := row.Scan(&h.HallID, &h.HallName, &h.Capacity, &h.Sessions, &h.Sold, &h.Revenue); err != nil {
			return h, err
		}
		h.Percent = domain.OccupancyPercent(h.Sold, h.Sessions, h.Capacity)
		return h, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

func (r *ReportRepo) GenreStats(ctx context.Context, p domain.Period) ([]domain.GenreStats, error) {
	const op = "postgres.ReportRepo.GenreStats"

	from, to := periodArgs(p)

	rows, err := r.pool.Query(ctx,
		`SELECT f.genre, COUNT(DISTINCT f.id), COUNT(DISTINCT s.id),
		        COUNT(b.id), COALESCE(SUM(b.amount), 0)
		 FROM films f
		 JOIN sessions s ON s.film_id = f.id
		 LEFT JOIN bookings b ON b.session_id = s.id AND b.status = 'active'
		 WHERE `+sessionInPeriod+`
		 GROUP BY f.genre
		 ORDER BY COALESCE(SUM(b.amount), 0) DESC, f.genre`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.GenreStats, error) {
		var g domain.GenreStats
		err := row.Scan(&g.Genre, &g.Films, &g.Sessions, &g.Tickets, &g.Revenue)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// UserActivity filters on the booking date rather than the session date.
func (r *ReportRepo) UserActivity(ctx context.Context, p domain.Period, limit int) ([]domain.UserActivity, error) {
	const op = "postgres.ReportRepo.UserActivity"

	from, to := periodArgs(p)

	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.full_name, u.email,
		        COUNT(b.id),
		        COUNT(b.id) FILTER (WHERE b.status = 'active'),
		        COUNT(b.id) FILTER (WHERE b.status = 'cancelled'),
		        COALESCE(SUM(b.amount) FILTER (WHERE b.status = 'active'), 0) AS spent
		 FROM users u
		 JOIN bookings b ON b.user_id = u.id
		 WHERE ($1::date IS NULL OR b.created_at::date >= $1::date)
		   AND ($2::date IS NULL OR b.created_at::date <= $2::date)
		 GROUP BY u.id, u.full_name, u.email
		 ORDER BY spent DESC, u.id
		 LIMIT $3`,
		from, to, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UserActivity, error) {
		var u domain.UserActivity
		err := row.Scan(&u.UserID, &u.FullName, &u.Email, &u.Orders, &u.Active, &u.Cancelled, &u.Spent)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// Cancelled filters on the cancellation date.
func (r *ReportRepo) Cancelled(ctx context.Context, p domain.Period) ([]domain.CancelledBooking, error) {
	const op = "postgres.ReportRepo.Cancelled"

	from, to := periodArgs(p)

	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.cancelled_at, u.full_name, f.title, s.starts_at, b.amount
		 FROM bookings b
		 JOIN users u ON u.id = b.user_id
		 JOIN sessions s ON s.id = b.session_id
		 JOIN films f ON f.id = s.film_id
		 WHERE b.status = 'cancelled'
		   AND ($1::date IS NULL OR b.cancelled_at::date >= $1::date)
		   AND ($2::date IS NULL OR b.cancelled_at::date <= $2::date)
		 ORDER BY b.cancelled_at DESC, b.id DESC`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CancelledBooking, error) {
		var c domain.CancelledBooking
		err := row.Scan(&c.BookingID, &c.CancelledAt, &c.UserName, &c.FilmTitle, &c.SessionDate, &c.Refund)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

func (r *ReportRepo) Summary(ctx context.Context, p domain.Period) (*domain.PeriodSummary, error) {
	const op = "postgres.ReportRepo.Summary"

	from, to := periodArgs(p)

	var sum domain.PeriodSummary
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT s.id),
		        COUNT(b.id) FILTER (WHERE b.status = 'active'),
		        COALESCE(SUM(b.amount) FILTER (WHERE b.status = 'active'), 0),
		        COUNT(b.id) FILTER (WHERE b.status = 'cancelled'),
		        COUNT(DISTINCT b.user_id) FILTER (WHERE b.status = 'active')
		 FROM sessions s
		 LEFT JOIN bookings b ON b.session_id = s.id
		 WHERE `+sessionInPeriod,
		from, to,
	).Scan(&sum.Sessions, &sum.TicketsSold, &sum.Revenue, &sum.Cancellations, &sum.UniqueBuyers)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	sum.AverageTicket = domain.AverageTicket(sum.Revenue, sum.TicketsSold)

	return &sum, nil
}

func (r *ReportRepo) Schedule(ctx context.Context, day time.Time) ([]domain.ScheduleRow, error) {
	const op = "postgres.ReportRepo.Schedule"

	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.starts_at, s.ends_at, f.title, h.name, s.base_price,
		        h.capacity - COUNT(b.id)
		 FROM sessions s
		 JOIN films f ON f.id = s.film_id
		 JOIN halls h ON h.id = s.hall_id
		 LEFT JOIN bookings b ON b.session_id = s.id AND b.status = 'active'
		 WHERE s.starts_at::date = $1::date
		 GROUP BY s.id, s.starts_at, s.ends_at, f.title, h.name, s.base_price, h.capacity
		 ORDER BY s.starts_at, h.name`,
		domain.DayOf(day),
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ScheduleRow, error) {
		var s domain.ScheduleRow
		err := row.Scan(&s.SessionID, &s.StartsAt, &s.EndsAt, &s.FilmTitle, &s.HallName, &s.Price, &s.FreeSeats)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

func (r *ReportRepo) ByWeekday(ctx context.Context, p domain.Period) ([]domain.BucketRevenue, error) {
	const op = "postgres.ReportRepo.ByWeekday"

	out, err := r.buckets(ctx, `EXTRACT(DOW FROM s.starts_at)::int`, p)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *ReportRepo) ByHour(ctx context.Context, p domain.Period) ([]domain.BucketRevenue, error) {
	const op = "postgres.ReportRepo.ByHour"

	out, err := r.buckets(ctx, `EXTRACT(HOUR FROM s.starts_at)::int`, p)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *ReportRepo) buckets(ctx context.Context, bucketExpr string, p domain.Period) ([]domain.BucketRevenue, error) {
	from, to := periodArgs(p)

	rows, err := r.pool.Query(ctx,
		`SELECT `+bucketExpr+` AS bucket, COUNT(b.id), COALESCE(SUM(b.amount), 0)
		 FROM bookings b
		 JOIN sessions s ON s.id = b.session_id
		 WHERE b.status = 'active' AND `+sessionInPeriod+`
		 GROUP BY bucket
		 ORDER BY bucket`,
		from, to,
	)
	if err != nil {
		return nil, translateDBErr(err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BucketRevenue, error) {
		var b domain.BucketRevenue
		err := row.Scan(&b.Bucket, &b.Tickets, &b.Revenue)
		return b, err
	})
	if err != nil {
		return nil, translateDBErr(err)
	}

	return out, nil
}
