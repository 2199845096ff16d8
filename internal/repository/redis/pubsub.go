package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionsPubSub broadcasts "seat map changed" notifications between API
// instances.
type SessionsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewSessionsPubSub(rdb *redis.Client) *SessionsPubSub {
	return &SessionsPubSub{
		rdb:     rdb,
		channel: ChannelSessionsChanged(),
	}
}

type sessionChangedMsg struct {
	Type      string `json:"type"`
	SessionID int64  `json:"session_id"`
	TsUnix    int64  `json:"ts_unix"`
}

func encodeSessionChanged(sessionID int64, at time.Time) []byte {
	b, _ := json.Marshal(sessionChangedMsg{
		Type:      "session_changed",
		SessionID: sessionID,
		TsUnix:    at.Unix(),
	})
	return b
}

func decodeSessionChanged(payload string) (int64, bool) {
	var msg sessionChangedMsg
	if err := json.Unmarshal([]byte(payload), &msg); err != nil || msg.SessionID == 0 {
		return 0, false
	}
	return msg.SessionID, true
}

func (p *SessionsPubSub) PublishSessionChanged(ctx context.Context, sessionID int64) error {
	return p.rdb.Publish(ctx, p.channel, encodeSessionChanged(sessionID, time.Now())).Err()
}

// Subscribe blocks until ctx is done, calling handler for every change.
func (p *SessionsPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, sessionID int64)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			if id, ok := decodeSessionChanged(m.Payload); ok {
				handler(ctx, id)
			}
		}
	}
}
