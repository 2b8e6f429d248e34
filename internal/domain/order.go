package domain

import "time"

type Order struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	Tickets   []Ticket
}

type Ticket struct {
	ID       int64
	OrderID  int64
	FlightID int64
	Row      int
	Seat     int
	Flight   *Flight
}

// TicketSpec is one requested seat of an order submission.
type TicketSpec struct {
	Row      int
	Seat     int
	FlightID int64
}

func (t TicketSpec) Address() Seat {
	return Seat{Row: t.Row, Seat: t.Seat}
}
