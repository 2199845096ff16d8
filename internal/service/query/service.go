package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
	"github.com/shopspring/decimal"
)

type Config struct {
	// Now decides what "today" means when no date is given.
	Now func() time.Time
}

type Service struct {
	store repository.Store
	now   func() time.Time
}

func New(store repository.Store, cfg Config) *Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Service{
		store: store,
		now:   cfg.Now,
	}
}

// Repertoire lists the films that are still showing.
//
// Parameters:
//   - ctx: request-scoped context.
//   - from: first day to consider; the zero time means today.
//
// Returns:
//   - []domain.Film: films with at least one session on or after from, by title.
//   - error: only on storage failure.
func (s *Service) Repertoire(ctx context.Context, from time.Time) ([]domain.Film, error) {
	const op = "service.query.Repertoire"

	films, err := s.store.Films().Repertoire(ctx, s.day(from))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return films, nil
}

// FilmSessions lists a film's sessions with free seat counts.
//
// Returns:
//   - []domain.SessionSummary: sessions on or after from, by start time.
//   - error: domain.ErrNotFound if the film does not exist.
func (s *Service) FilmSessions(ctx context.Context, filmID int64, from time.Time) ([]domain.SessionSummary, error) {
	const op = "service.query.FilmSessions"

	if _, err := s.store.Films().Get(ctx, filmID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, domain.NotFoundf("film %d not found", filmID))
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	sessions, err := s.store.Sessions().ListByFilm(ctx, filmID, s.day(from))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return sessions, nil
}

// History returns every booking of the user, newest session first.
func (s *Service) History(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	const op = "service.query.History"

	list, err := s.store.Bookings().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return list, nil
}

// TicketInfo gathers what a ticket renderer needs for one booking.
//
// Parameters:
//   - bookingID: ID of the booking.
//   - userID: ID of the caller.
//   - admin: admins may read any ticket.
//
// Returns:
//   - *domain.TicketInfo: film, session, seat and payment details.
//   - error: domain.ErrNotFound if the booking does not exist or belongs to
//     another user, so foreign booking IDs cannot be enumerated.
func (s *Service) TicketInfo(ctx context.Context, bookingID, userID int64, admin bool) (*domain.TicketInfo, error) {
	const op = "service.query.TicketInfo"

	info, err := s.store.Bookings().TicketInfo(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, domain.NotFoundf("booking %d not found", bookingID))
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if !admin && info.UserID != userID {
		return nil, fmt.Errorf("%s:%w", op, domain.NotFoundf("booking %d not found", bookingID))
	}

	return info, nil
}

func (s *Service) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	const op = "service.query.Balance"

	u, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%s:%w", op, domain.NotFoundf("user %d not found", userID))
		}

		return decimal.Zero, fmt.Errorf("%s:%w", op, err)
	}

	return u.Balance, nil
}

func (s *Service) day(from time.Time) time.Time {
	if from.IsZero() {
		from = s.now()
	}

	return domain.DayOf(from)
}
