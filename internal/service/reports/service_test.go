package reports

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

// Monday 2026-10-19 and Tuesday 2026-10-20.
var (
	monday  = time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC)
	tuesday = time.Date(2026, 10, 20, 21, 0, 0, 0, time.UTC)
)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	ann, err := store.Users().Create(ctx, &domain.User{Login: "ann", FullName: "Ann", Balance: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	bob, err := store.Users().Create(ctx, &domain.User{Login: "bob", FullName: "Bob", Balance: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	drama, err := store.Films().Create(ctx, &domain.Film{Title: "Drama", Genre: "drama", DurationMin: 100})
	require.NoError(t, err)
	action, err := store.Films().Create(ctx, &domain.Film{Title: "Action", Genre: "action", DurationMin: 100})
	require.NoError(t, err)

	hall := domain.Hall{ID: 1, Name: "H1", Rows: 2, SeatsPerRow: 5, Capacity: 10}
	require.NoError(t, store.Halls().Create(ctx, &hall))
	require.NoError(t, store.Halls().CreateSeats(ctx, domain.HallSeats(1, 2, 5, false)))

	newSession := func(filmID int64, at time.Time, price int64) int64 {
		id, err := store.Sessions().Create(ctx, &domain.Session{
			FilmID: filmID, HallID: 1, StartsAt: at, EndsAt: at.Add(2 * time.Hour),
			BasePrice: decimal.NewFromInt(price),
		})
		require.NoError(t, err)
		return id
	}

	s1 := newSession(drama, monday, 10)
	s2 := newSession(action, tuesday, 20)

	n := 0
	book := func(userID, sessionID int64, seat int, amount int64) int64 {
		n++
		id, err := store.Bookings().Insert(ctx, &domain.Booking{
			UserID: userID, SessionID: sessionID, Row: 1, Seat: seat,
			Amount: decimal.NewFromInt(amount), TicketNumber: "T" + string(rune('A'+n)),
			CreatedAt: monday.Add(-24 * time.Hour),
		})
		require.NoError(t, err)
		return id
	}

	book(ann, s1, 1, 10)
	book(bob, s1, 2, 10)
	book(ann, s2, 1, 20)
	book(ann, s2, 2, 20)
	cancelled := book(bob, s2, 3, 20)

	_, err = store.Bookings().Cancel(ctx, cancelled, monday)
	require.NoError(t, err)

	return store
}

func TestTopFilms(t *testing.T) {
	svc := New(seed(t))

	rows, err := svc.TopFilms(context.Background(), domain.Period{}, 0)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Action", rows[0].Title)
	assert.Equal(t, int64(2), rows[0].Tickets)
	assert.Equal(t, "40", rows[0].Revenue.String())

	one, err := svc.TopFilms(context.Background(), domain.Period{}, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestSummary_Period(t *testing.T) {
	svc := New(seed(t))

	sum, err := svc.Summary(context.Background(), domain.Period{From: monday, To: monday})
	require.NoError(t, err)

	assert.Equal(t, int64(1), sum.Sessions)
	assert.Equal(t, int64(2), sum.TicketsSold)
	assert.Equal(t, int64(2), sum.UniqueBuyers)
	assert.Equal(t, int64(0), sum.Cancellations)
	assert.Equal(t, "20", sum.Revenue.String())

	all, err := svc.Summary(context.Background(), domain.Period{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.TicketsSold)
	assert.Equal(t, int64(1), all.Cancellations)
	assert.Equal(t, "15", all.AverageTicket.String())
}

func TestSales_RejectsInvertedPeriod(t *testing.T) {
	svc := New(seed(t))

	_, err := svc.Sales(context.Background(), domain.Period{From: tuesday, To: monday})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBreakdowns(t *testing.T) {
	svc := New(seed(t))
	ctx := context.Background()

	days, err := svc.ByWeekday(ctx, domain.Period{})
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, int(time.Monday), days[0].Bucket)
	assert.Equal(t, int(time.Tuesday), days[1].Bucket)

	hours, err := svc.ByHour(ctx, domain.Period{})
	require.NoError(t, err)
	require.Len(t, hours, 2)
	assert.Equal(t, 14, hours[0].Bucket)
	assert.Equal(t, 21, hours[1].Bucket)
	assert.Equal(t, "40", hours[1].Revenue.String())

	genres, err := svc.GenreStats(ctx, domain.Period{})
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "action", genres[0].Genre)
}

func TestUserActivityAndCancelled(t *testing.T) {
	svc := New(seed(t))
	ctx := context.Background()

	users, err := svc.UserActivity(ctx, domain.Period{}, 5)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ann", users[0].FullName)
	assert.Equal(t, "50", users[0].Spent.String())
	assert.Equal(t, int64(1), users[1].Cancelled)

	cancelled, err := svc.Cancelled(ctx, domain.Period{From: monday})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, "Bob", cancelled[0].UserName)
	assert.Equal(t, "20", cancelled[0].Refund.String())
}

func TestOccupancyAndSchedule(t *testing.T) {
	svc := New(seed(t))
	ctx := context.Background()

	occ, err := svc.HallOccupancy(ctx, domain.Period{})
	require.NoError(t, err)
	require.Len(t, occ, 1)
	assert.Equal(t, int64(2), occ[0].Sessions)
	assert.Equal(t, int64(4), occ[0].Sold)
	assert.InDelta(t, 20.0, occ[0].Percent, 0.001)

	sched, err := svc.Schedule(ctx, tuesday)
	require.NoError(t, err)
	require.Len(t, sched, 1)
	assert.Equal(t, 8, sched[0].FreeSeats)

	daily, err := svc.DailySales(ctx, monday)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, int64(2), daily[0].Sold)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultTopLimit, clampLimit(0))
	assert.Equal(t, 7, clampLimit(7))
	assert.Equal(t, maxTopLimit, clampLimit(1000))
}
