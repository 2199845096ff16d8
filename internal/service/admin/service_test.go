package admin

import (
	"context"
	"testing"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyCache struct {
	sessions []int64
	halls    []int64
}

func (c *spyCache) InvalidateSession(_ context.Context, id int64) error {
	c.sessions = append(c.sessions, id)
	return nil
}

func (c *spyCache) InvalidateHall(_ context.Context, id int64) error {
	c.halls = append(c.halls, id)
	return nil
}

var evening = time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *memory.Store, *spyCache) {
	t.Helper()
	store := memory.NewStore()
	cache := &spyCache{}
	return New(store, cache, nil, nil), store, cache
}

func seed(t *testing.T, svc *Service) (filmID, hallID int64) {
	t.Helper()
	ctx := context.Background()

	filmID, err := svc.CreateFilm(ctx, FilmInput{Title: " Dune ", Genre: "sci-fi", DurationMin: 105})
	require.NoError(t, err)

	hall, err := svc.CreateHall(ctx, "Grand", 5, 10, true)
	require.NoError(t, err)

	return filmID, hall.ID
}

func TestCreateFilm_Validation(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateFilm(ctx, FilmInput{Title: "  ", DurationMin: 90})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateFilm(ctx, FilmInput{Title: "Short", DurationMin: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)

	id, err := svc.CreateFilm(ctx, FilmInput{Title: " Dune ", DurationMin: 155})
	require.NoError(t, err)

	f, err := svc.GetFilm(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", f.Title)
}

func TestUpdateFilm_NotFound(t *testing.T) {
	svc, _, _ := newService(t)

	err := svc.UpdateFilm(context.Background(), 42, FilmInput{Title: "X", DurationMin: 1})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateHall_LayoutAndIDs(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	first, err := svc.CreateHall(ctx, "A", 5, 10, true)
	require.NoError(t, err)
	second, err := svc.CreateHall(ctx, "B", 2, 3, false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, 50, first.Capacity)
	assert.Len(t, first.Seats, 50)

	vip := 0
	for _, s := range first.Seats {
		if s.Type == domain.SeatVIP {
			vip++
			assert.Greater(t, s.Row, 3)
		}
	}
	assert.Equal(t, 20, vip)

	got, err := svc.GetHall(ctx, second.ID)
	require.NoError(t, err)
	assert.Len(t, got.Seats, 6)

	_, err = svc.CreateHall(ctx, "C", 0, 3, false)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.CreateHall(ctx, "", 1, 3, false)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateSession_DefaultEnd(t *testing.T) {
	svc, store, _ := newService(t)
	filmID, hallID := seed(t, svc)
	ctx := context.Background()

	id, err := svc.CreateSession(ctx, SessionInput{
		FilmID:    filmID,
		HallID:    hallID,
		StartsAt:  evening,
		BasePrice: decimal.RequireFromString("9.999"),
	})
	require.NoError(t, err)

	sess, err := store.Sessions().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, evening.Add(120*time.Minute), sess.EndsAt)
	assert.Equal(t, "10.00", sess.BasePrice.StringFixed(2))
}

func TestCreateSession_Rules(t *testing.T) {
	svc, _, _ := newService(t)
	filmID, hallID := seed(t, svc)
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, SessionInput{FilmID: filmID, HallID: hallID, StartsAt: evening, BasePrice: decimal.NewFromInt(10)})
	require.NoError(t, err)

	early := evening.Add(-time.Hour)
	touching := evening.Add(2 * time.Hour)
	overlapping := evening.Add(119 * time.Minute)

	tests := []struct {
		name string
		in   SessionInput
		want error
	}{
		{"zero price", SessionInput{FilmID: filmID, HallID: hallID, StartsAt: touching, BasePrice: decimal.Zero}, domain.ErrValidation},
		{"end before start", SessionInput{FilmID: filmID, HallID: hallID, StartsAt: touching, EndsAt: &early, BasePrice: decimal.NewFromInt(5)}, domain.ErrValidation},
		{"unknown film", SessionInput{FilmID: 99, HallID: hallID, StartsAt: touching, BasePrice: decimal.NewFromInt(5)}, domain.ErrNotFound},
		{"unknown hall", SessionInput{FilmID: filmID, HallID: 99, StartsAt: touching, BasePrice: decimal.NewFromInt(5)}, domain.ErrNotFound},
		{"overlap", SessionInput{FilmID: filmID, HallID: hallID, StartsAt: overlapping, BasePrice: decimal.NewFromInt(5)}, domain.ErrScheduleConflict},
		{"touching is fine", SessionInput{FilmID: filmID, HallID: hallID, StartsAt: touching, BasePrice: decimal.NewFromInt(5)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSession(ctx, tt.in)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateSession_IgnoresItself(t *testing.T) {
	svc, _, cache := newService(t)
	filmID, hallID := seed(t, svc)
	ctx := context.Background()

	id, err := svc.CreateSession(ctx, SessionInput{FilmID: filmID, HallID: hallID, StartsAt: evening, BasePrice: decimal.NewFromInt(10)})
	require.NoError(t, err)

	err = svc.UpdateSession(ctx, id, SessionInput{FilmID: filmID, HallID: hallID, StartsAt: evening.Add(30 * time.Minute), BasePrice: decimal.NewFromInt(12)})
	require.NoError(t, err)

	assert.Equal(t, []int64{id}, cache.sessions)
}

func TestDeleteRules(t *testing.T) {
	svc, store, cache := newService(t)
	filmID, hallID := seed(t, svc)
	ctx := context.Background()

	sessionID, err := svc.CreateSession(ctx, SessionInput{FilmID: filmID, HallID: hallID, StartsAt: evening, BasePrice: decimal.NewFromInt(10)})
	require.NoError(t, err)

	err = svc.DeleteHall(ctx, hallID)
	require.ErrorIs(t, err, domain.ErrInUse)

	userID, err := store.Users().Create(ctx, &domain.User{Login: "x", Balance: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = store.Bookings().Insert(ctx, &domain.Booking{
		UserID: userID, SessionID: sessionID, Row: 1, Seat: 1,
		Amount: decimal.NewFromInt(10), TicketNumber: "T1", CreatedAt: evening.Add(-time.Hour),
	})
	require.NoError(t, err)

	err = svc.DeleteSession(ctx, sessionID)
	require.ErrorIs(t, err, domain.ErrInUse)

	err = svc.DeleteFilm(ctx, filmID)
	require.ErrorIs(t, err, domain.ErrInUse)

	err = svc.UpdateSession(ctx, sessionID, SessionInput{FilmID: filmID, HallID: 77, StartsAt: evening, BasePrice: decimal.NewFromInt(10)})
	require.ErrorIs(t, err, domain.ErrInUse)

	err = svc.DeleteSession(ctx, 555)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, cache.halls)
}

func TestDeleteSession_KeepsCancelledBookings(t *testing.T) {
	svc, store, _ := newService(t)
	filmID, hallID := seed(t, svc)
	ctx := context.Background()

	sessionID, err := svc.CreateSession(ctx, SessionInput{FilmID: filmID, HallID: hallID, StartsAt: evening, BasePrice: decimal.NewFromInt(10)})
	require.NoError(t, err)

	userID, err := store.Users().Create(ctx, &domain.User{Login: "y", Balance: decimal.NewFromInt(100)})
	require.NoError(t, err)
	bookingID, err := store.Bookings().Insert(ctx, &domain.Booking{
		UserID: userID, SessionID: sessionID, Row: 1, Seat: 1,
		Amount: decimal.NewFromInt(10), TicketNumber: "T2", CreatedAt: evening.Add(-time.Hour),
	})
	require.NoError(t, err)
	ok, err := store.Bookings().Cancel(ctx, bookingID, evening.Add(-30*time.Minute))
	require.NoError(t, err)
	require.True(t, ok)

	err = svc.DeleteSession(ctx, sessionID)
	require.ErrorIs(t, err, domain.ErrInUse)

	_, err = store.Sessions().Get(ctx, sessionID)
	assert.NoError(t, err)
}

func TestDeleteFilm_CascadesSessions(t *testing.T) {
	svc, store, cache := newService(t)
	filmID, hallID := seed(t, svc)
	ctx := context.Background()

	sessionID, err := svc.CreateSession(ctx, SessionInput{FilmID: filmID, HallID: hallID, StartsAt: evening, BasePrice: decimal.NewFromInt(10)})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFilm(ctx, filmID))

	_, err = store.Sessions().Get(ctx, sessionID)
	assert.Error(t, err)

	require.NoError(t, svc.DeleteHall(ctx, hallID))
	assert.Equal(t, []int64{hallID}, cache.halls)
}
