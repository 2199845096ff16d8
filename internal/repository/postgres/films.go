package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
)

type FilmRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *FilmRepo) With(db DB) *FilmRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *FilmRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const filmColumns = `id, title, genre, duration_min, age_rating, description`

func (r *FilmRepo) Create(ctx context.Context, f *domain.Film) (int64, error) {
	const op = "postgres.FilmRepo.Create"

	var id int64
	err := r.handle().QueryRow(ctx,
		`INSERT INTO films(title, genre, duration_min, age_rating, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		f.Title, f.Genre, f.DurationMin, f.AgeRating, f.Description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *FilmRepo) Update(ctx context.Context, f *domain.Film) error {
	const op = "postgres.FilmRepo.Update"

	tag, err := r.handle().Exec(ctx,
		`UPDATE films
		 SET title = $2, genre = $3, duration_min = $4, age_rating = $5, description = $6
		 WHERE id = $1`,
		f.ID, f.Title, f.Genre, f.DurationMin, f.AgeRating, f.Description,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// Delete relies on ON DELETE CASCADE from sessions to films. Sessions that
// still have bookings make the statement fail with ErrInUse.
func (r *FilmRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgres.FilmRepo.Delete"

	tag, err := r.handle().Exec(ctx, `DELETE FROM films WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *FilmRepo) Get(ctx context.Context, id int64) (*domain.Film, error) {
	const op = "postgres.FilmRepo.Get"

	var f domain.Film
	err := r.handle().QueryRow(ctx,
		`SELECT `+filmColumns+` FROM films WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.Title, &f.Genre, &f.DurationMin, &f.AgeRating, &f.Description)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &f, nil
}

func (r *FilmRepo) List(ctx context.Context) ([]domain.Film, error) {
	const op = "postgres.FilmRepo.List"

	films, err := r.queryFilms(ctx, `SELECT `+filmColumns+` FROM films ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return films, nil
}

func (r *FilmRepo) Repertoire(ctx context.Context, from time.Time) ([]domain.Film, error) {
	const op = "postgres.FilmRepo.Repertoire"

	films, err := r.queryFilms(ctx,
		`SELECT `+filmColumns+`
		 FROM films f
		 WHERE EXISTS (
		 	SELECT 1 FROM sessions s
		 	WHERE s.film_id = f.id AND s.starts_at >= $1
		 )
		 ORDER BY title`,
		from,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return films, nil
}

func (r *FilmRepo) CountBookings(ctx context.Context, filmID int64) (int64, error) {
	const op = "postgres.FilmRepo.CountBookings"

	var n int64
	err := r.handle().QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM bookings b
		 JOIN sessions s ON s.id = b.session_id
		 WHERE s.film_id = $1`,
		filmID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return n, nil
}

func (r *FilmRepo) queryFilms(ctx context.Context, sql string, args ...any) ([]domain.Film, error) {
	rows, err := r.handle().Query(ctx, sql, args...)
	if err != nil {
		return nil, translateDBErr(err)
	}

	defer rows.Close()

	var out []domain.Film
	for rows.Next() {
		var f domain.Film
		if err := rows.Scan(&f.ID, &f.Title, &f.Genre, &f.DurationMin, &f.AgeRating, &f.Description); err != nil {
			return nil, translateDBErr(err)
		}

		out = append(out, f)
	}

	return out, rows.Err()
}
