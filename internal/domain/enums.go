package domain

import (
	"fmt"
	"strings"
)

func ParseSeatType(s string) (SeatType, error) {
	switch SeatType(strings.ToLower(strings.TrimSpace(s))) {
	case SeatRegular, "":
		return SeatRegular, nil
	case SeatVIP:
		return SeatVIP, nil
	default:
		return "", Validationf("unknown seat type %q", s)
	}
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingActive:
		return BookingActive, nil
	case BookingCancelled:
		return BookingCancelled, nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

// IsActive reports whether the booking still holds its seat.
func (s BookingStatus) IsActive() bool {
	switch s {
	case BookingActive:
		return true
	case BookingCancelled:
		return false
	default:
		return false
	}
}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCustomer:
		return RoleCustomer, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}
