package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	occupancyTTL = 30 * time.Second
	layoutTTL    = 10 * time.Minute
)

// Cache keeps seat occupancy per session and seat layout per hall. Redis
// being unreachable degrades to reading storage, never to an error.
type Cache struct {
	rdb *redis.Client
	sf  singleflight.Group
}

func New(client *redis.Client) *Cache {
	return &Cache{rdb: client}
}

// Occupancy returns the active bookings of a session, loading them on a miss.
func (c *Cache) Occupancy(
	ctx context.Context,
	sessionID int64,
	load func(ctx context.Context) ([]domain.Booking, error),
) ([]domain.Booking, error) {
	return readThrough(ctx, c, KeySessionOccupancy(sessionID), occupancyTTL, load)
}

// Layout returns the seats of a hall. Layouts never change after creation,
// so only hall deletion invalidates them.
func (c *Cache) Layout(
	ctx context.Context,
	hallID int64,
	load func(ctx context.Context) ([]domain.Seat, error),
) ([]domain.Seat, error) {
	return readThrough(ctx, c, KeyHallLayout(hallID), layoutTTL, load)
}

func (c *Cache) InvalidateSession(ctx context.Context, sessionID int64) error {
	return c.rdb.Del(ctx, KeySessionOccupancy(sessionID)).Err()
}

func (c *Cache) InvalidateHall(ctx context.Context, hallID int64) error {
	return c.rdb.Del(ctx, KeyHallLayout(hallID)).Err()
}

// readThrough serves key from redis and falls back to load on a miss.
// Concurrent misses on one key share a single load.
func readThrough[T any](
	ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (T, error) {
	if v, ok := lookup[T](ctx, c.rdb, key); ok {
		return v, nil
	}

	res, err, _ := c.sf.Do(key, func() (any, error) {
		if v, ok := lookup[T](ctx, c.rdb, key); ok {
			return v, nil
		}

		v, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if b, err := json.Marshal(v); err == nil {
			// a failed write only costs the next reader a load
			_ = c.rdb.Set(ctx, key, b, ttl).Err()
		}

		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return res.(T), nil
}

func lookup[T any](ctx context.Context, rdb *redis.Client, key string) (T, bool) {
	b, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		var zero T
		return zero, false
	}

	return decodeEntry[T](b)
}

// decodeEntry treats an unreadable entry as a miss so a format change
// between releases heals itself on the next write.
func decodeEntry[T any](b []byte) (T, bool) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		var zero T
		return zero, false
	}

	return v, true
}
