package httpgin

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/cinego/internal/service"
)

// @Summary  Live seat map (server-sent events)
// @Description Sends a "seats" event on connect, after every change of the
// @Description session and at least every refresh interval.
// @Tags     browse
// @Produce  text/event-stream
// @Param    id  path  int  true  "Session ID"
// @Success  200 {array} domain.SeatState
// @Failure  404 {object} ErrorResponse
// @Router   /sessions/{id}/seats/stream [get]
func handleSeatStream(svcs *service.Services, feed ChangeFeed, refresh time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var userID int64
		if id, ok := identityFrom(c); ok {
			userID = id.UserID
		}

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		seats, err := svcs.Availability.GetSeatMap(ctx, sessionID, userID)
		if err != nil {
			respondErr(c, err)
			return
		}

		changed := make(chan struct{}, 1)
		if feed != nil {
			go func() {
				_ = feed.Subscribe(ctx, func(_ context.Context, id int64) {
					if id != sessionID {
						return
					}
					select {
					case changed <- struct{}{}:
					default:
					}
				})
			}()
		}

		ticker := time.NewTicker(refresh)
		defer ticker.Stop()

		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no")
		c.SSEvent("seats", seats)
		c.Writer.Flush()

		c.Stream(func(io.Writer) bool {
			select {
			case <-ctx.Done():
				return false
			case <-changed:
			case <-ticker.C:
			}

			seats, err := svcs.Availability.GetSeatMap(ctx, sessionID, userID)
			if err != nil {
				c.SSEvent("error", ErrorResponse{Error: "seat map unavailable"})
				return false
			}
			c.SSEvent("seats", seats)
			return true
		})
	}
}
