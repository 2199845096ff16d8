package httpgin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/cinego/internal/domain"
	redisrepo "github.com/kirinyoku/cinego/internal/repository/redis"
	"github.com/kirinyoku/cinego/internal/service"
	"github.com/kirinyoku/cinego/internal/service/auth"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// IdempotencyStore remembers booking responses by Idempotency-Key.
type IdempotencyStore interface {
	Begin(ctx context.Context, key string) (redisrepo.IdemState, string, error)
	Save(ctx context.Context, key string, payload string) error
	Release(ctx context.Context, key string) error
}

// ChangeFeed delivers "seat map changed" notifications.
type ChangeFeed interface {
	Subscribe(ctx context.Context, handler func(ctx context.Context, sessionID int64)) error
}

// Deps wires the router. Limiter, Idem and Feed are optional.
type Deps struct {
	Services *service.Services
	Limiter  RateLimiter
	Idem     IdempotencyStore
	Feed     ChangeFeed
	Logger   *slog.Logger
	// StreamRefresh is how often the seat stream re-sends the map when no
	// change arrives. Defaults to 15s.
	StreamRefresh time.Duration
}

func NewRouter(d Deps, middlewares ...gin.HandlerFunc) *gin.Engine {
	if d.StreamRefresh <= 0 {
		d.StreamRefresh = 15 * time.Second
	}

	svcs := d.Services

	r := gin.New()

	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware(d.Logger), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/register", handleRegister(svcs))
	r.POST("/auth/login", handleLogin(svcs))

	optional := r.Group("/", OptionalAuth(svcs.Auth))
	{
		optional.GET("/films", handleRepertoire(svcs))
		optional.GET("/films/:id/sessions", handleFilmSessions(svcs))
		optional.GET("/sessions/:id/seats", handleSeatMap(svcs))
		optional.GET("/sessions/:id/price", handleTicketPrice(svcs))
		optional.GET("/sessions/:id/seats/stream", handleSeatStream(svcs, d.Feed, d.StreamRefresh))
	}

	authed := r.Group("/", Authenticate(svcs.Auth))
	{
		authed.GET("/me/balance", handleBalance(svcs))
		authed.GET("/me/bookings", handleHistory(svcs))

		place := []gin.HandlerFunc{}
		if d.Limiter != nil {
			place = append(place, RateLimit(d.Limiter, d.Logger))
		}
		place = append(place, handlePlaceBooking(svcs, d.Idem, d.Logger))
		authed.POST("/bookings", place...)

		authed.POST("/bookings/:id/cancel", handleCancelBooking(svcs))
		authed.GET("/bookings/:id/ticket", handleTicket(svcs))
	}

	admin := r.Group("/admin", Authenticate(svcs.Auth), RequireRole(domain.RoleAdmin))
	{
		admin.GET("/films", handleListFilms(svcs))
		admin.POST("/films", handleCreateFilm(svcs))
		admin.GET("/films/:id", handleGetFilm(svcs))
		admin.PUT("/films/:id", handleUpdateFilm(svcs))
		admin.DELETE("/films/:id", handleDeleteFilm(svcs))

		admin.GET("/halls", handleListHalls(svcs))
		admin.POST("/halls", handleCreateHall(svcs))
		admin.GET("/halls/:id", handleGetHall(svcs))
		admin.DELETE("/halls/:id", handleDeleteHall(svcs))

		admin.POST("/sessions", handleCreateSession(svcs))
		admin.PUT("/sessions/:id", handleUpdateSession(svcs))
		admin.DELETE("/sessions/:id", handleDeleteSession(svcs))

		reports := admin.Group("/reports")
		{
			reports.GET("/daily", handleDailySales(svcs))
			reports.GET("/sales", handleSales(svcs))
			reports.GET("/top-films", handleTopFilms(svcs))
			reports.GET("/occupancy", handleHallOccupancy(svcs))
			reports.GET("/genres", handleGenreStats(svcs))
			reports.GET("/users", handleUserActivity(svcs))
			reports.GET("/cancelled", handleCancelled(svcs))
			reports.GET("/summary", handleSummary(svcs))
			reports.GET("/schedule", handleSchedule(svcs))
			reports.GET("/weekdays", handleByWeekday(svcs))
			reports.GET("/hours", handleByHour(svcs))
		}
	}

	return r
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// parseDate reads a YYYY-MM-DD query value. An absent value is the zero
// time.
func parseDate(c *gin.Context, name string) (time.Time, bool) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		badRequest(c, "invalid "+name+" (YYYY-MM-DD)")
		return time.Time{}, false
	}
	return t, true
}

func parsePeriod(c *gin.Context) (domain.Period, bool) {
	from, ok := parseDate(c, "from")
	if !ok {
		return domain.Period{}, false
	}
	to, ok := parseDate(c, "to")
	if !ok {
		return domain.Period{}, false
	}
	return domain.Period{From: from, To: to}, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func statusForKind(k domain.ErrorKind) int {
	switch k {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindSeatUnavailable, domain.KindScheduleConflict, domain.KindInUse:
		return http.StatusConflict
	case domain.KindInsufficientFunds:
		return http.StatusPaymentRequired
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	if de, ok := domain.AsError(err); ok {
		c.JSON(statusForKind(de.Kind), ErrorResponse{Error: de.Error(), Kind: string(de.Kind)})
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: auth.ErrInvalidCredentials.Error()})
		return
	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: auth.ErrInvalidToken.Error()})
		return
	case errors.Is(err, context.Canceled):
		c.Status(499)
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
