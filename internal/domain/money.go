package domain

import "github.com/shopspring/decimal"

// VIPMultiplier is applied to the session base price for VIP seats.
var VIPMultiplier = decimal.RequireFromString("1.5")

// TicketPrice returns the price of one seat of the given type.
func TicketPrice(base decimal.Decimal, seatType SeatType) decimal.Decimal {
	switch seatType {
	case SeatVIP:
		return base.Mul(VIPMultiplier).Round(2)
	case SeatRegular:
		return base.Round(2)
	default:
		return base.Round(2)
	}
}
