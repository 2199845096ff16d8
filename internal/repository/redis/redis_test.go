package redis

import (
	"testing"
	"time"

	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecision(t *testing.T) {
	d, err := parseDecision([]any{int64(0), int64(5), int64(1200)})
	require.NoError(t, err)

	assert.False(t, d.Allowed)
	assert.Equal(t, int64(5), d.Count)
	assert.Equal(t, 1200*time.Millisecond, d.RetryAfter)

	d, err = parseDecision([]any{int64(1), int64(3), int64(0)})
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(3), d.Count)
	assert.Zero(t, d.RetryAfter)

	_, err = parseDecision([]any{int64(1), "3", int64(0)})
	assert.Error(t, err)

	_, err = parseDecision("nope")
	assert.Error(t, err)
}

func TestSessionChangedRoundTrip(t *testing.T) {
	payload := encodeSessionChanged(42, time.Unix(1_700_000_000, 0))

	id, ok := decodeSessionChanged(string(payload))
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = decodeSessionChanged(`{"type":"session_changed"}`)
	assert.False(t, ok)
	_, ok = decodeSessionChanged(`garbage`)
	assert.False(t, ok)
}

func TestParseIdemValue(t *testing.T) {
	state, payload := parseIdemValue(`RES:{"success":true}`)
	assert.Equal(t, IdemDone, state)
	assert.Equal(t, `{"success":true}`, payload)

	state, payload = parseIdemValue(idemLock)
	assert.Equal(t, IdemInProgress, state)
	assert.Empty(t, payload)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "cinego:v1:session:7:occupancy", KeySessionOccupancy(7))
	assert.Equal(t, "cinego:v1:hall:3:layout", KeyHallLayout(3))
	assert.Equal(t, "cinego:v1:idem:booking:3:abc", KeyIdempotency(3, "abc"))
	assert.Equal(t, "cinego:v1:rl:booking:3", KeyRateLimit("booking", "3"))
}

func TestDecodeEntry(t *testing.T) {
	seats, ok := decodeEntry[[]domain.Seat]([]byte(`[{"hall_id":1,"row":2,"number":3,"type":"vip"}]`))
	require.True(t, ok)
	require.Len(t, seats, 1)
	assert.Equal(t, domain.SeatVIP, seats[0].Type)

	_, ok = decodeEntry[[]domain.Seat]([]byte(`{"not":"a list"}`))
	assert.False(t, ok)

	_, ok = decodeEntry[[]domain.Booking]([]byte(`garbage`))
	assert.False(t, ok)
}
