package repository

import (
	"fmt"
	"strings"
	"time"
)

// Page is a LIMIT/OFFSET window.
type Page struct {
	Limit  int
	Offset int
}

type AirplaneFilter struct {
	TypeIDs     []int64
	CapacityGTE *int
	CapacityLTE *int
}

type FlightFilter struct {
	AirplaneIDs []int64
	RouteIDs    []int64
	// Date matches the UTC calendar day of the departure time.
	Date *time.Time
}

// predicates accumulates AND-ed SQL conditions with positional arguments.
type predicates struct {
	clauses []string
	args    []any
}

// add appends a clause whose single %d verb becomes the placeholder of arg.
func (p *predicates) add(clause string, arg any) {
	p.args = append(p.args, arg)
	p.clauses = append(p.clauses, fmt.Sprintf(clause, len(p.args)))
}

func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

// paginate returns the LIMIT/OFFSET suffix and the arguments including the window.
func (p *predicates) paginate(page Page) (string, []any) {
	args := append(append([]any{}, p.args...), page.Limit, page.Offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

func (f AirplaneFilter) predicates() *predicates {
	p := &predicates{}
	if len(f.TypeIDs) > 0 {
		p.add("a.airplane_type_id = ANY($%d)", f.TypeIDs)
	}
	if f.CapacityGTE != nil {
		p.add("a.rows * a.seats_in_row >= $%d", *f.CapacityGTE)
	}
	if f.CapacityLTE != nil {
		p.add("a.rows * a.seats_in_row <= $%d", *f.CapacityLTE)
	}
	return p
}

func (f FlightFilter) predicates() *predicates {
	p := &predicates{}
	if len(f.AirplaneIDs) > 0 {
		p.add("f.airplane_id = ANY($%d)", f.AirplaneIDs)
	}
	if len(f.RouteIDs) > 0 {
		p.add("f.route_id = ANY($%d)", f.RouteIDs)
	}
	if f.Date != nil {
		p.add("(f.departure_time AT TIME ZONE 'UTC')::date = $%d::date", f.Date.Format(time.DateOnly))
	}
	return p
}

// Window applies a page to a list that was loaded in full.
func Window[T any](items []T, page Page) []T {
	if page.Offset < 0 || page.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if page.Limit > 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	return items[page.Offset:end]
}
