package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/events"
	"github.com/kirinyoku/cinego/internal/repository"
	"github.com/kirinyoku/cinego/internal/uow"
)

// SeatCache drops cached seat occupancy of a session.
type SeatCache interface {
	InvalidateSession(ctx context.Context, sessionID int64) error
}

// Notifier tells other API instances that a session's seat map changed.
type Notifier interface {
	PublishSessionChanged(ctx context.Context, sessionID int64) error
}

// ticketAttempts bounds how many fresh ticket numbers one booking tries.
const ticketAttempts = 3

type Config struct {
	// Now is the clock used for the "session already started" check and for
	// booking timestamps. Defaults to time.Now.
	Now func() time.Time
	// TicketNumber issues ticket codes. Defaults to domain.NewTicketNumber.
	TicketNumber func(now time.Time) string
}

type Service struct {
	store    repository.Store
	uow      *uow.UoW
	cache    SeatCache
	notifier Notifier
	events   events.Publisher
	log      *slog.Logger
	now      func() time.Time
	ticketNo func(time.Time) string
}

// New builds the booking engine. cache, notifier and publisher may be nil.
func New(
	store repository.Store,
	cache SeatCache,
	notifier Notifier,
	publisher events.Publisher,
	log *slog.Logger,
	cfg Config,
) *Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.TicketNumber == nil {
		cfg.TicketNumber = domain.NewTicketNumber
	}

	if publisher == nil {
		publisher = events.Noop{}
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		store:    store,
		uow:      uow.NewUoW(store),
		cache:    cache,
		notifier: notifier,
		events:   publisher,
		log:      log,
		now:      cfg.Now,
		ticketNo: cfg.TicketNumber,
	}
}

// PlaceBooking debits the user and books one seat in a single transaction.
//
// Parameters:
//   - ctx: request-scoped context.
//   - userID: ID of the paying user.
//   - sessionID: ID of the session.
//   - row, seat: position of the seat in the session's hall.
//
// Returns:
//   - domain.BookingResult: Success with booking id, ticket number and amount,
//     or Success=false with the failure kind and message. A failed result
//     leaves no trace in storage.
//   - error: only for storage failures, never for a domain failure.
func (s *Service) PlaceBooking(
	ctx context.Context,
	userID, sessionID int64,
	row, seat int,
) (domain.BookingResult, error) {
	const op = "service.booking.PlaceBooking"

	if row <= 0 || seat <= 0 {
		return failed(domain.Validationf("row and seat must be positive, got row %d seat %d", row, seat)), nil
	}

	var booking domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx repository.Repos,
		after func(uow.AfterCommit),
	) error {
		now := s.now()

		sess, err := tx.Sessions().Get(ctx, sessionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NotFoundf("session %d not found", sessionID)
			}

			return err
		}

		if !now.Before(sess.StartsAt) {
			return domain.Validationf("session %d has already started", sessionID)
		}

		st, err := tx.Halls().Seat(ctx, sess.HallID, row, seat)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.NotFoundf("seat row %d number %d does not exist in hall %d", row, seat, sess.HallID)
			}

			return err
		}

		if _, err := tx.Bookings().ActiveBySeat(ctx, sessionID, row, seat); err == nil {
			return domain.SeatUnavailablef("seat row %d number %d is already booked", row, seat)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		price := domain.TicketPrice(sess.BasePrice, st.Type)

		if _, err := tx.Users().Debit(ctx, userID, price); err != nil {
			if errors.Is(err, repository.ErrInsufficientFunds) {
				return domain.InsufficientFundsf("balance does not cover ticket price %s", price.StringFixed(2))
			}

			if errors.Is(err, repository.ErrNotFound) {
				return domain.NotFoundf("user %d not found", userID)
			}

			return err
		}

		booking = domain.Booking{
			UserID:    userID,
			SessionID: sessionID,
			Row:       row,
			Seat:      seat,
			Status:    domain.BookingActive,
			Amount:    price,
			CreatedAt: now,
		}

		id, err := s.insert(ctx, tx, &booking)
		if err != nil {
			// lost the race against a concurrent buyer after the pre-check
			if errors.Is(err, repository.ErrConflict) {
				return domain.SeatUnavailablef("seat row %d number %d is already booked", row, seat)
			}

			return err
		}

		booking.ID = id

		after(func(ctx context.Context) {
			s.afterChange(ctx, events.NewBookingEvent(events.BookingConfirmed, booking, now))
		})

		return nil
	})
	if err != nil {
		if de, ok := domain.AsError(err); ok {
			return failed(de), nil
		}

		return domain.BookingResult{}, fmt.Errorf("%s:%w", op, err)
	}

	return domain.BookingResult{
		Success:      true,
		BookingID:    booking.ID,
		TicketNumber: booking.TicketNumber,
		Amount:       booking.Amount,
	}, nil
}

// insert stores b, issuing a new ticket number whenever the previous one
// turns out to be taken.
func (s *Service) insert(ctx context.Context, tx repository.Repos, b *domain.Booking) (int64, error) {
	var err error
	for attempt := 1; attempt <= ticketAttempts; attempt++ {
		b.TicketNumber = s.ticketNo(b.CreatedAt)

		var id int64
		id, err = tx.Bookings().Insert(ctx, b)
		if err == nil {
			return id, nil
		}

		if !errors.Is(err, repository.ErrDuplicateTicket) {
			return 0, err
		}

		s.log.Warn("ticket number collision", "ticket_number", b.TicketNumber, "attempt", attempt)
	}

	return 0, fmt.Errorf("no free ticket number after %d attempts: %w", ticketAttempts, err)
}

// CancelBooking cancels an active booking owned by userID and refunds the
// amount stored on it.
//
// Returns:
//   - bool: true if this call cancelled the booking; false if the booking
//     does not exist, belongs to someone else or is no longer active.
//   - error: only for storage failures.
func (s *Service) CancelBooking(ctx context.Context, bookingID, userID int64) (bool, error) {
	const op = "service.booking.CancelBooking"

	var cancelled bool

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx repository.Repos,
		after func(uow.AfterCommit),
	) error {
		cancelled = false

		b, err := tx.Bookings().Get(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}

			return err
		}

		if b.UserID != userID || !b.Status.IsActive() {
			return nil
		}

		now := s.now()

		ok, err := tx.Bookings().Cancel(ctx, bookingID, now)
		if err != nil {
			return err
		}

		// a concurrent cancel got there first
		if !ok {
			return nil
		}

		if _, err := tx.Users().Credit(ctx, b.UserID, b.Amount); err != nil {
			return err
		}

		cancelled = true

		after(func(ctx context.Context) {
			s.afterChange(ctx, events.NewBookingEvent(events.BookingCancelled, *b, now))
		})

		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, err)
	}

	return cancelled, nil
}

// afterChange runs once the transaction is durable. Failures here are logged
// only; the booking itself already succeeded.
func (s *Service) afterChange(ctx context.Context, e events.BookingEvent) {
	if s.cache != nil {
		if err := s.cache.InvalidateSession(ctx, e.SessionID); err != nil {
			s.log.Warn("seat cache invalidation failed", "session_id", e.SessionID, "err", err)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.PublishSessionChanged(ctx, e.SessionID); err != nil {
			s.log.Warn("session change notification failed", "session_id", e.SessionID, "err", err)
		}
	}

	if err := s.events.Publish(ctx, e); err != nil {
		s.log.Error("booking event publish failed",
			"type", e.Type, "booking_id", e.BookingID, "err", err)
	}
}

func failed(err error) domain.BookingResult {
	res := domain.BookingResult{Success: false, ErrorMessage: err.Error()}
	if de, ok := domain.AsError(err); ok {
		res.ErrorKind = de.Kind
		res.ErrorMessage = de.Message
	}
	return res
}
