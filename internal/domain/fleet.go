package domain

import (
	"encoding/json"
	"fmt"
)

// CargoAirplane replaces the numeric capacity of airplanes without passenger seats.
const CargoAirplane = "cargo_airplane"

type AirplaneType struct {
	ID   int64
	Name string
}

type Airplane struct {
	ID             int64
	Name           string
	AirplaneTypeID *int64
	AirplaneType   *AirplaneType
	Rows           int
	SeatsInRow     int
	Image          string
}

func (a Airplane) Capacity() Capacity {
	return Capacity(a.Rows * a.SeatsInRow)
}

func (a Airplane) Grid() SeatGrid {
	return SeatGrid{Rows: a.Rows, SeatsInRow: a.SeatsInRow}
}

func (a Airplane) Validate() error {
	verr := &ValidationError{}
	if a.Name == "" {
		verr.Add("name", "This field may not be blank.")
	}
	if a.Rows < 0 {
		verr.Add("rows", "Ensure this value is greater than or equal to 0.")
	}
	if a.SeatsInRow < 0 {
		verr.Add("seats_in_row", "Ensure this value is greater than or equal to 0.")
	}
	return verr.ErrOrNil()
}

// Capacity is rows × seats_in_row. A non-positive value marks a cargo airplane.
type Capacity int

func (c Capacity) IsCargo() bool {
	return c <= 0
}

func (c Capacity) MarshalJSON() ([]byte, error) {
	if c.IsCargo() {
		return json.Marshal(CargoAirplane)
	}
	return json.Marshal(int(c))
}

func (c Capacity) String() string {
	if c.IsCargo() {
		return CargoAirplane
	}
	return fmt.Sprintf("%d", int(c))
}

// SeatGrid is the (row, seat) address space of an airplane.
type SeatGrid struct {
	Rows       int
	SeatsInRow int
}

// Check validates a seat address against the grid. Messages are keyed "row" and "seat".
func (g SeatGrid) Check(row, seat int) *ValidationError {
	verr := &ValidationError{}
	for _, c := range []struct {
		value     int
		attr      string
		gridAttr  string
		gridLimit int
	}{
		{row, "row", "rows", g.Rows},
		{seat, "seat", "seats_in_row", g.SeatsInRow},
	} {
		if c.value < 1 || c.value > c.gridLimit {
			verr.Add(c.attr, fmt.Sprintf(
				"%s number must be in available range: (1, %s): (1, %d)",
				c.attr, c.gridAttr, c.gridLimit,
			))
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

type Crew struct {
	ID        int64
	FirstName string
	LastName  string
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}
