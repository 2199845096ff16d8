package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
	"github.com/kirinyoku/cinego/internal/uow"
	"github.com/shopspring/decimal"
)

const (
	maxHallRows    = 100
	maxSeatsPerRow = 100
)

// Cache is the part of the read cache catalog changes must invalidate.
type Cache interface {
	InvalidateSession(ctx context.Context, sessionID int64) error
	InvalidateHall(ctx context.Context, hallID int64) error
}

type Notifier interface {
	PublishSessionChanged(ctx context.Context, sessionID int64) error
}

type Service struct {
	store    repository.Store
	cache    Cache
	notifier Notifier
	uow      *uow.UoW
	log      *slog.Logger
}

// New builds the catalog service. cache and notifier may be nil.
func New(store repository.Store, cache Cache, notifier Notifier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		store:    store,
		cache:    cache,
		notifier: notifier,
		uow:      uow.NewUoW(store),
		log:      log,
	}
}

type FilmInput struct {
	Title       string
	Genre       string
	DurationMin int
	AgeRating   string
	Description string
}

func (in FilmInput) film() (domain.Film, error) {
	f := domain.Film{
		Title:       strings.TrimSpace(in.Title),
		Genre:       strings.TrimSpace(in.Genre),
		DurationMin: in.DurationMin,
		AgeRating:   strings.TrimSpace(in.AgeRating),
		Description: strings.TrimSpace(in.Description),
	}

	if f.Title == "" {
		return f, domain.Validationf("film title is required")
	}

	if f.DurationMin <= 0 {
		return f, domain.Validationf("film duration must be positive, got %d", f.DurationMin)
	}

	return f, nil
}

// CreateFilm validates and stores a film.
//
// Returns:
//   - int64: the new film ID.
//   - error: domain.ErrValidation for a missing title or non-positive duration.
func (s *Service) CreateFilm(ctx context.Context, in FilmInput) (int64, error) {
	const op = "service.admin.CreateFilm"

	f, err := in.film()
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	id, err := s.store.Films().Create(ctx, &f)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return id, nil
}

func (s *Service) UpdateFilm(ctx context.Context, id int64, in FilmInput) error {
	const op = "service.admin.UpdateFilm"

	f, err := in.film()
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	f.ID = id

	if err := s.store.Films().Update(ctx, &f); err != nil {
		return fmt.Errorf("%s:%w", op, notFound(err, "film", id))
	}

	return nil
}

// DeleteFilm removes a film and its sessions.
//
// Returns:
//   - error: domain.ErrNotFound if the film does not exist.
//   - error: domain.ErrInUse if any of its sessions has bookings.
func (s *Service) DeleteFilm(ctx context.Context, id int64) error {
	const op = "service.admin.DeleteFilm"

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		n, err := tx.Films().CountBookings(ctx, id)
		if err != nil {
			return err
		}

		if n > 0 {
			return domain.InUsef("film %d has %d bookings", id, n)
		}

		if err := tx.Films().Delete(ctx, id); err != nil {
			return notFound(err, "film", id)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (s *Service) GetFilm(ctx context.Context, id int64) (*domain.Film, error) {
	const op = "service.admin.GetFilm"

	f, err := s.store.Films().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, notFound(err, "film", id))
	}

	return f, nil
}

func (s *Service) ListFilms(ctx context.Context) ([]domain.Film, error) {
	const op = "service.admin.ListFilms"

	films, err := s.store.Films().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return films, nil
}

// CreateHall allocates the next hall ID and lays out its seats in one
// transaction.
//
// Parameters:
//   - name: display name.
//   - rows, seatsPerRow: grid size; capacity is their product.
//   - vip: when set, the last two rows are VIP.
//
// Returns:
//   - *domain.HallWithSeats: the stored hall and its seats.
//   - error: domain.ErrValidation for an empty name or an invalid grid.
func (s *Service) CreateHall(
	ctx context.Context,
	name string,
	rows, seatsPerRow int,
	vip bool,
) (*domain.HallWithSeats, error) {
	const op = "service.admin.CreateHall"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s:%w", op, domain.Validationf("hall name is required"))
	}

	if rows <= 0 || rows > maxHallRows || seatsPerRow <= 0 || seatsPerRow > maxSeatsPerRow {
		return nil, fmt.Errorf("%s:%w", op, domain.Validationf(
			"hall grid must be 1..%d rows by 1..%d seats, got %dx%d",
			maxHallRows, maxSeatsPerRow, rows, seatsPerRow))
	}

	var out domain.HallWithSeats

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		id, err := tx.Halls().NextID(ctx)
		if err != nil {
			return err
		}

		h := domain.Hall{
			ID:          id,
			Name:        name,
			Rows:        rows,
			SeatsPerRow: seatsPerRow,
			VIP:         vip,
			Capacity:    rows * seatsPerRow,
		}

		if err := tx.Halls().Create(ctx, &h); err != nil {
			return err
		}

		seats := domain.HallSeats(id, rows, seatsPerRow, vip)
		if err := tx.Halls().CreateSeats(ctx, seats); err != nil {
			return err
		}

		out = domain.HallWithSeats{Hall: h, Seats: seats}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &out, nil
}

func (s *Service) GetHall(ctx context.Context, id int64) (*domain.HallWithSeats, error) {
	const op = "service.admin.GetHall"

	h, err := s.store.Halls().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, notFound(err, "hall", id))
	}

	seats, err := s.store.Halls().Seats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &domain.HallWithSeats{Hall: *h, Seats: seats}, nil
}

func (s *Service) ListHalls(ctx context.Context) ([]domain.Hall, error) {
	const op = "service.admin.ListHalls"

	halls, err := s.store.Halls().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return halls, nil
}

// DeleteHall removes a hall with its seats.
//
// Returns:
//   - error: domain.ErrInUse if any session is scheduled in the hall.
func (s *Service) DeleteHall(ctx context.Context, id int64) error {
	const op = "service.admin.DeleteHall"

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		n, err := tx.Sessions().CountByHall(ctx, id)
		if err != nil {
			return err
		}

		if n > 0 {
			return domain.InUsef("hall %d has %d sessions", id, n)
		}

		if err := tx.Halls().Delete(ctx, id); err != nil {
			return notFound(err, "hall", id)
		}

		after(func(ctx context.Context) {
			if s.cache != nil {
				if err := s.cache.InvalidateHall(ctx, id); err != nil {
					s.log.Warn("hall cache invalidation failed", "hall_id", id, "err", err)
				}
			}
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

type SessionInput struct {
	FilmID   int64
	HallID   int64
	StartsAt time.Time
	// EndsAt overrides the derived end (start + film duration + ad break).
	EndsAt    *time.Time
	BasePrice decimal.Decimal
}

// CreateSession schedules a film in a hall.
//
// Returns:
//   - int64: the new session ID.
//   - error: domain.ErrValidation for a bad price or interval.
//   - error: domain.ErrNotFound if the film or hall does not exist.
//   - error: domain.ErrScheduleConflict if the hall is busy in [start,end).
func (s *Service) CreateSession(ctx context.Context, in SessionInput) (int64, error) {
	const op = "service.admin.CreateSession"

	var id int64

	err := s.uow.DoWithOpts(ctx, repository.TxOptions{Serializable: true}, func(
		ctx context.Context,
		tx repository.Repos,
		after func(uow.AfterCommit),
	) error {
		sess, err := s.prepareSession(ctx, tx, 0, in)
		if err != nil {
			return err
		}

		id, err = tx.Sessions().Create(ctx, sess)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return id, nil
}

// UpdateSession reschedules a session. Moving a session that already has
// bookings to another hall is refused with domain.ErrInUse.
func (s *Service) UpdateSession(ctx context.Context, id int64, in SessionInput) error {
	const op = "service.admin.UpdateSession"

	err := s.uow.DoWithOpts(ctx, repository.TxOptions{Serializable: true}, func(
		ctx context.Context,
		tx repository.Repos,
		after func(uow.AfterCommit),
	) error {
		current, err := tx.Sessions().Get(ctx, id)
		if err != nil {
			return notFound(err, "session", id)
		}

		if current.HallID != in.HallID {
			n, err := tx.Bookings().CountBySession(ctx, id)
			if err != nil {
				return err
			}

			if n > 0 {
				return domain.InUsef("session %d has bookings and cannot change hall", id)
			}
		}

		sess, err := s.prepareSession(ctx, tx, id, in)
		if err != nil {
			return err
		}

		sess.ID = id

		if err := tx.Sessions().Update(ctx, sess); err != nil {
			return notFound(err, "session", id)
		}

		after(func(ctx context.Context) { s.sessionChanged(ctx, id) })

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// DeleteSession removes a session that has never been booked.
//
// Returns:
//   - error: domain.ErrInUse if any booking, active or cancelled, references it.
func (s *Service) DeleteSession(ctx context.Context, id int64) error {
	const op = "service.admin.DeleteSession"

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Repos, after func(uow.AfterCommit)) error {
		n, err := tx.Bookings().CountBySession(ctx, id)
		if err != nil {
			return err
		}

		if n > 0 {
			return domain.InUsef("session %d has %d bookings", id, n)
		}

		if err := tx.Sessions().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrInUse) {
				return domain.InUsef("session %d has bookings", id)
			}
			return notFound(err, "session", id)
		}

		after(func(ctx context.Context) { s.sessionChanged(ctx, id) })

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (s *Service) prepareSession(
	ctx context.Context,
	tx repository.Repos,
	excludeID int64,
	in SessionInput,
) (*domain.Session, error) {
	if !in.BasePrice.IsPositive() {
		return nil, domain.Validationf("base price must be positive, got %s", in.BasePrice)
	}

	if in.StartsAt.IsZero() {
		return nil, domain.Validationf("session start is required")
	}

	film, err := tx.Films().Get(ctx, in.FilmID)
	if err != nil {
		return nil, notFound(err, "film", in.FilmID)
	}

	if _, err := tx.Halls().Get(ctx, in.HallID); err != nil {
		return nil, notFound(err, "hall", in.HallID)
	}

	end := domain.DefaultSessionEnd(in.StartsAt, film.DurationMin)
	if in.EndsAt != nil {
		end = *in.EndsAt
	}

	if !end.After(in.StartsAt) {
		return nil, domain.Validationf("session end %s must be after start %s",
			end.Format(time.RFC3339), in.StartsAt.Format(time.RFC3339))
	}

	clash, err := tx.Sessions().Overlapping(ctx, in.HallID, in.StartsAt, end, excludeID)
	if err != nil {
		return nil, err
	}

	if len(clash) > 0 {
		c := clash[0]
		return nil, domain.ScheduleConflictf("hall %d is busy from %s to %s (session %d)",
			in.HallID, c.StartsAt.Format("2006-01-02 15:04"), c.EndsAt.Format("15:04"), c.ID)
	}

	return &domain.Session{
		FilmID:    in.FilmID,
		HallID:    in.HallID,
		StartsAt:  in.StartsAt,
		EndsAt:    end,
		BasePrice: in.BasePrice.Round(2),
	}, nil
}

func (s *Service) sessionChanged(ctx context.Context, id int64) {
	if s.cache != nil {
		if err := s.cache.InvalidateSession(ctx, id); err != nil {
			s.log.Warn("seat cache invalidation failed", "session_id", id, "err", err)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.PublishSessionChanged(ctx, id); err != nil {
			s.log.Warn("session change notification failed", "session_id", id, "err", err)
		}
	}
}

// notFound turns a repository miss into a domain error naming the entity.
func notFound(err error, what string, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFoundf("%s %d not found", what, id)
	}

	if errors.Is(err, repository.ErrInUse) {
		return domain.InUsef("%s %d is still referenced", what, id)
	}

	return err
}
