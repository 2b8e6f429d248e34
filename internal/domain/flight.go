package domain

import (
	"strings"
	"time"
)

type Flight struct {
	ID            int64
	RouteID       int64
	AirplaneID    int64
	CrewIDs       []int64
	DepartureTime time.Time
	ArrivalTime   time.Time

	Route    *Route
	Airplane *Airplane
	Crew     []Crew

	// Computed per read from the tickets table.
	TicketsAvailable int
	TakenSeats       []Seat
}

type Seat struct {
	Row  int
	Seat int
}

func (f Flight) Validate() error {
	verr := &ValidationError{}
	if f.DepartureTime.IsZero() {
		verr.Add("departure_time", "This field is required.")
	}
	if f.ArrivalTime.IsZero() {
		verr.Add("arrival_time", "This field is required.")
	}
	if !f.DepartureTime.IsZero() && !f.ArrivalTime.IsZero() && f.ArrivalTime.Before(f.DepartureTime) {
		verr.Add("arrival_time", "Arrival time must not be earlier than departure time.")
	}
	return verr.ErrOrNil()
}

// CrewNames joins crew member names for list projections.
func (f Flight) CrewNames() string {
	names := make([]string, 0, len(f.Crew))
	for _, c := range f.Crew {
		names = append(names, c.FullName())
	}
	return strings.Join(names, ", ")
}
