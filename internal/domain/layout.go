package domain

// vipRows is the number of rows at the back of a hall that become VIP when
// the hall has VIP seating.
const vipRows = 2

// HallSeats generates the seat set of a rows x perRow hall. Rows and seat
// numbers start at 1.
func HallSeats(hallID int64, rows, perRow int, vip bool) []Seat {
	seats := make([]Seat, 0, rows*perRow)
	for row := 1; row <= rows; row++ {
		t := SeatRegular
		if vip && row > rows-vipRows {
			t = SeatVIP
		}
		for n := 1; n <= perRow; n++ {
			seats = append(seats, Seat{HallID: hallID, Row: row, Number: n, Type: t})
		}
	}
	return seats
}
