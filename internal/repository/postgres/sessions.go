package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
)

type SessionRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *SessionRepo) With(db DB) *SessionRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *SessionRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) (int64, error) {
	const op = "postgres.SessionRepo.Create"

	var id int64
	err := r.handle().QueryRow(ctx,
		`INSERT INTO sessions(film_id, hall_id, starts_at, ends_at, base_price)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		s.FilmID, s.HallID, s.StartsAt, s.EndsAt, s.BasePrice,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *SessionRepo) Update(ctx context.Context, s *domain.Session) error {
	const op = "postgres.SessionRepo.Update"

	tag, err := r.handle().Exec(ctx,
		`UPDATE sessions
		 SET film_id = $2, hall_id = $3, starts_at = $4, ends_at = $5, base_price = $6
		 WHERE id = $1`,
		s.ID, s.FilmID, s.HallID, s.StartsAt, s.EndsAt, s.BasePrice,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgres.SessionRepo.Delete"

	tag, err := r.handle().Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *SessionRepo) Get(ctx context.Context, id int64) (*domain.Session, error) {
	const op = "postgres.SessionRepo.Get"

	var s domain.Session
	err := r.handle().QueryRow(ctx,
		`SELECT id, film_id, hall_id, starts_at, ends_at, base_price
		 FROM sessions WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.FilmID, &s.HallID, &s.StartsAt, &s.EndsAt, &s.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &s, nil
}

func (r *SessionRepo) ListByFilm(ctx context.Context, filmID int64, from time.Time) ([]domain.SessionSummary, error) {
	const op = "postgres.SessionRepo.ListByFilm"

	rows, err := r.handle().Query(ctx,
		`SELECT s.id, s.film_id, s.hall_id, s.starts_at, s.ends_at, s.base_price,
		        f.title, h.name, h.capacity,
		        h.capacity - (
		        	SELECT COUNT(*) FROM bookings b
		        	WHERE b.session_id = s.id AND b.status = 'active'
		        ) AS free_seats
		 FROM sessions s
		 JOIN films f ON f.id = s.film_id
		 JOIN halls h ON h.id = s.hall_id
		 WHERE s.film_id = $1 AND s.starts_at >= $2
		 ORDER BY s.starts_at, h.name`,
		filmID, from,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.SessionSummary
	for rows.Next() {
		var s domain.SessionSummary
		if err := rows.Scan(
			&s.ID, &s.FilmID, &s.HallID, &s.StartsAt, &s.EndsAt, &s.BasePrice,
			&s.FilmTitle, &s.HallName, &s.Capacity, &s.FreeSeats,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *SessionRepo) Overlapping(
	ctx context.Context,
	hallID int64,
	start, end time.Time,
	excludeID int64,
) ([]domain.Session, error) {
	const op = "postgres.SessionRepo.Overlapping"

	rows, err := r.handle().Query(ctx,
		`SELECT id, film_id, hall_id, starts_at, ends_at, base_price
		 FROM sessions
		 WHERE hall_id = $1
		   AND starts_at < $3
		   AND ends_at > $2
		   AND id <> $4
		 ORDER BY starts_at`,
		hallID, start, end, excludeID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.ID, &s.FilmID, &s.HallID, &s.StartsAt, &s.EndsAt, &s.BasePrice); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *SessionRepo) CountByHall(ctx context.Context, hallID int64) (int64, error) {
	const op = "postgres.SessionRepo.CountByHall"

	var n int64
	err := r.handle().QueryRow(ctx,
		`SELECT COUNT(*) FROM sessions WHERE hall_id = $1`,
		hallID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return n, nil
}
