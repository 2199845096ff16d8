package httpgin

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/service"
)

// periodReport adapts a report over an optional from/to range.
func periodReport[T any](fn func(ctx context.Context, p domain.Period) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := parsePeriod(c)
		if !ok {
			return
		}
		rows, err := fn(c.Request.Context(), p)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// dayReport adapts a report over one day, defaulting to today.
func dayReport[T any](fn func(ctx context.Context, day time.Time) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, ok := parseDate(c, "date")
		if !ok {
			return
		}
		if day.IsZero() {
			day = domain.DayOf(time.Now())
		}
		rows, err := fn(c.Request.Context(), day)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// @Summary  Sales per session of one day
// @Tags     reports
// @Security BearerAuth
// @Param    date query string false "YYYY-MM-DD, default today"
// @Success  200 {array} domain.SessionSales
// @Router   /admin/reports/daily [get]
func handleDailySales(svcs *service.Services) gin.HandlerFunc {
	return dayReport(svcs.Reports.DailySales)
}

// @Summary  Sales by day, film and hall
// @Tags     reports
// @Security BearerAuth
// @Param    from query string false "YYYY-MM-DD"
// @Param    to   query string false "YYYY-MM-DD"
// @Success  200 {array} domain.SalesRow
// @Failure  422 {object} ErrorResponse
// @Router   /admin/reports/sales [get]
func handleSales(svcs *service.Services) gin.HandlerFunc {
	return periodReport(svcs.Reports.Sales)
}

// @Summary  Films ranked by revenue
// @Tags     reports
// @Security BearerAuth
// @Param    from  query string false "YYYY-MM-DD"
// @Param    to    query string false "YYYY-MM-DD"
// @Param    limit query int    false "default 10"
// @Success  200 {array} domain.FilmRevenue
// @Router   /admin/reports/top-films [get]
func handleTopFilms(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 0)
		periodReport(func(ctx context.Context, p domain.Period) ([]domain.FilmRevenue, error) {
			return svcs.Reports.TopFilms(ctx, p, limit)
		})(c)
	}
}

// @Summary  Hall occupancy
// @Tags     reports
// @Security BearerAuth
// @Param    from query string false "YYYY-MM-DD"
// @Param    to   query string false "YYYY-MM-DD"
// @Success  200 {array} domain.HallOccupancy
// @Router   /admin/reports/occupancy [get]
func handleHallOccupancy(svcs *service.Services) gin.HandlerFunc {
	return periodReport(svcs.Reports.HallOccupancy)
}

// @Summary  Genre statistics
// @Tags     reports
// @Security BearerAuth
// @Param    from query string false "YYYY-MM-DD"
// @Param    to   query string false "YYYY-MM-DD"
// @Success  200 {array} domain.GenreStats
// @Router   /admin/reports/genres [get]
func handleGenreStats(svcs *service.Services) gin.HandlerFunc {
	return periodReport(svcs.Reports.GenreStats)
}

// @Summary  Top customers
// @Tags     reports
// @Security BearerAuth
// @Param    from  query string false "YYYY-MM-DD"
// @Param    to    query string false "YYYY-MM-DD"
// @Param    limit query int    false "default 10"
// @Success  200 {array} domain.UserActivity
// @Router   /admin/reports/users [get]
func handleUserActivity(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 0)
		periodReport(func(ctx context.Context, p domain.Period) ([]domain.UserActivity, error) {
			return svcs.Reports.UserActivity(ctx, p, limit)
		})(c)
	}
}

// @Summary  Cancelled bookings
// @Tags     reports
// @Security BearerAuth
// @Param    from query string false "YYYY-MM-DD"
// @Param    to   query string false "YYYY-MM-DD"
// @Success  200 {array} domain.CancelledBooking
// @Router   /admin/reports/cancelled [get]
func handleCancelled(svcs *service.Services) gin.HandlerFunc {
	return periodReport(svcs.Reports.Cancelled)
}

// @Summary  Period summary
// @Tags     reports
// @Security BearerAuth
// @Param    from query string false "YYYY-MM-DD"
// @Param    to   query string false "YYYY-MM-DD"
// @Success  200 {object} domain.PeriodSummary
// @Router   /admin/reports/summary [get]
func handleSummary(svcs *service.Services) gin.HandlerFunc {
	return periodReport(svcs.Reports.Summary)
}

// @Summary  Schedule of one day with free seats
// @Tags     reports
// @Security BearerAuth
// @Param    date query string false "YYYY-MM-DD, default today"
// @Success  200 {array} domain.ScheduleRow
// @Router   /admin/reports/schedule [get]
func handleSchedule(svcs *service.Services) gin.HandlerFunc {
	return dayReport(svcs.Reports.Schedule)
}

// @Summary  Revenue by weekday (0 = Sunday)
// @Tags     reports
// @Security BearerAuth
// @Param    from query string false "YYYY-MM-DD"
// @Param    to   query string false "YYYY-MM-DD"
// @Success  200 {array} domain.BucketRevenue
// @Router   /admin/reports/weekdays [get]
func handleByWeekday(svcs *service.Services) gin.HandlerFunc {
	return periodReport(svcs.Reports.ByWeekday)
}

// @Summary  Revenue by start hour
// @Tags     reports
// @Security BearerAuth
// @Param    from query string false "YYYY-MM-DD"
// @Param    to   query string false "YYYY-MM-DD"
// @Success  200 {array} domain.BucketRevenue
// @Router   /admin/reports/hours [get]
func handleByHour(svcs *service.Services) gin.HandlerFunc {
	return periodReport(svcs.Reports.ByHour)
}
