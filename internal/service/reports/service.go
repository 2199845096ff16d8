package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository"
)

const (
	defaultTopLimit = 10
	maxTopLimit     = 100
)

// Service exposes the read-only sales reports. Every figure excludes
// cancelled bookings unless the report is about cancellations.
type Service struct {
	reports repository.ReportRepo
}

func New(store repository.Store) *Service {
	return &Service{reports: store.Reports()}
}

func (s *Service) DailySales(ctx context.Context, day time.Time) ([]domain.SessionSales, error) {
	const op = "service.reports.DailySales"

	rows, err := s.reports.DailySales(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return rows, nil
}

// Sales groups revenue by day, film and hall.
//
// Returns:
//   - error: domain.ErrValidation if the period ends before it starts.
func (s *Service) Sales(ctx context.Context, p domain.Period) ([]domain.SalesRow, error) {
	const op = "service.reports.Sales"

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	rows, err := s.reports.Sales(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return rows, nil
}

// TopFilms ranks films by revenue. limit is clamped to 1..100, defaulting
// to 10.
func (s *Service) TopFilms(ctx context.Context, p domain.Period, limit int) ([]domain.FilmRevenue, error) {
	const op = "service.reports.TopFilms"

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	rows, err := s.reports.TopFilms(ctx, p, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return rows, nil
}

func (s *Service) HallOccupancy(ctx context.Context, p domain.Period) ([]domain.HallOccupancy, error) {
	const op = "service.reports.HallOccupancy"

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	rows, err := s.reports.HallOccupancy(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return rows, nil
}

func (s *Service) GenreStats(ctx context.Context, p domain.Period) ([]domain.GenreStats, error) {
	const op = "service.reports.GenreStats"

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	rows, err := s.reports.GenreStats(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return rows, nil
}

// UserActivity ranks customers by money spent on bookings made in the period.
func (s *Service) UserActivity(ctx context.Context, p domain.Period, limit int) ([]domain.UserActivity, error) {
	const op = "service.reports.UserActivity"

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	rows, err := s.reports.UserActivity(ctx, p, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return rows, nil
}

// Cancelled lists bookings cancelled within the period.
func (s *Service) Cancelled(ctx context.Context, p domain.Period) ([]domain.CancelledBooking, error) {
	const op = "service.reports.Cancelled"

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	rows, err := s.reports.Cancelled(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return rows, nil
}

func (s *Service) Summary(ctx context.Context, p domain.Period) (*domain.PeriodSummary, error) {
	const op = "service.reports.Summary"

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	sum, err := s.reports.Summary(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return sum, nil
}

func (s *Service) Schedule(ctx context.Context, day time.Time) ([]domain.ScheduleRow, error) {
	const op = "service.reports.Schedule"

	rows, err := s.reports.Schedule(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return rows, nil
}

// ByWeekday buckets revenue by session weekday, 0 being Sunday.
func (s *Service) ByWeekday(ctx context.Context, p domain.Period) ([]domain.BucketRevenue, error) {
	const op = "service.reports.ByWeekday"

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	rows, err := s.reports.ByWeekday(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return rows, nil
}

// ByHour buckets revenue by the hour the session starts.
func (s *Service) ByHour(ctx context.Context, p domain.Period) ([]domain.BucketRevenue, error) {
	const op = "service.reports.ByHour"

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	rows, err := s.reports.ByHour(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return rows, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultTopLimit
	}

	return min(limit, maxTopLimit)
}
