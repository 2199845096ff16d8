package redis

import "fmt"

const ns = "cinego:v1"

func KeySessionOccupancy(sessionID int64) string {
	return fmt.Sprintf("%s:session:%d:occupancy", ns, sessionID)
}

func KeyHallLayout(hallID int64) string {
	return fmt.Sprintf("%s:hall:%d:layout", ns, hallID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func KeyIdempotency(userID int64, idemKey string) string {
	return fmt.Sprintf("%s:idem:booking:%d:%s", ns, userID, idemKey)
}

func ChannelSessionsChanged() string {
	return ns + ":sessions:changed"
}
