package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idemLock      = "LOCK"
	idemResPrefix = "RES:"
)

// IdempotencyStore remembers the response of a request by key. A key is
// first claimed with a short lock, then overwritten with the result.
type IdempotencyStore struct {
	rdb     *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl, lockTTL: 30 * time.Second}
}

type IdemState int

const (
	// IdemNew means the caller now owns the key and must Save or Release it.
	IdemNew IdemState = iota
	IdemInProgress
	IdemDone
)

// Begin claims key or reports what an earlier request with it left behind.
// For IdemDone the stored payload is returned.
func (s *IdempotencyStore) Begin(ctx context.Context, key string) (IdemState, string, error) {
	ok, err := s.rdb.SetNX(ctx, key, idemLock, s.lockTTL).Result()
	if err != nil {
		return 0, "", err
	}
	if ok {
		return IdemNew, "", nil
	}

	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET, try once more
		ok, err := s.rdb.SetNX(ctx, key, idemLock, s.lockTTL).Result()
		if err != nil {
			return 0, "", err
		}
		if ok {
			return IdemNew, "", nil
		}
		return IdemInProgress, "", nil
	}
	if err != nil {
		return 0, "", err
	}

	state, payload := parseIdemValue(v)
	return state, payload, nil
}

func parseIdemValue(v string) (IdemState, string) {
	if strings.HasPrefix(v, idemResPrefix) {
		return IdemDone, strings.TrimPrefix(v, idemResPrefix)
	}
	return IdemInProgress, ""
}

func (s *IdempotencyStore) Save(ctx context.Context, key string, payload string) error {
	return s.rdb.Set(ctx, key, idemResPrefix+payload, s.ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
