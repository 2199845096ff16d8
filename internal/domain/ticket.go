package domain

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewTicketNumber returns a printable ticket code such as TK251016-3FA9C01B7E.
func NewTicketNumber(now time.Time) string {
	id := uuid.New()
	return "TK" + now.Format("060102") + "-" + strings.ToUpper(hex.EncodeToString(id[:5]))
}
