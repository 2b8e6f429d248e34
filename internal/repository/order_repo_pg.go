package repository

import (
	"context"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderTx is the write path of an order submission. It is only valid inside OrderRepository.WithinTx.
type OrderTx interface {
	// SeatGrids locks the referenced flights and their airplanes for the transaction and
	// returns the seat grid of each flight found.
	SeatGrids(ctx context.Context, flightIDs []int64) (map[int64]domain.SeatGrid, error)
	// TakenSeats reports which of the requested seats are already sold.
	TakenSeats(ctx context.Context, tickets []domain.TicketSpec) (map[int64]map[domain.Seat]bool, error)
	CreateOrder(ctx context.Context, userID int64) (*domain.Order, error)
	CreateTicket(ctx context.Context, orderID int64, spec domain.TicketSpec) (*domain.Ticket, error)
}

type OrderRepository interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tx OrderTx) error) error
	ListByUser(ctx context.Context, userID int64, page Page) ([]domain.Order, int, error)
	GetForUser(ctx context.Context, id, userID int64) (*domain.Order, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

func (r *PGOrderRepository) WithinTx(ctx context.Context, fn func(tx OrderTx) error) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&pgOrderTx{tx: tx})
	})
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64, page Page) ([]domain.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `SELECT id, user_id, created_at FROM orders WHERE user_id=$1 ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		userID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachTickets(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *PGOrderRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRow(ctx, `SELECT id, user_id, created_at FROM orders WHERE id=$1 AND user_id=$2`, id, userID).
		Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}

	orders := []domain.Order{o}
	if err := r.attachTickets(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PGOrderRepository) attachTickets(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	index := make(map[int64]int, len(orders))
	ids := make([]int64, 0, len(orders))
	for i := range orders {
		index[orders[i].ID] = i
		ids = append(ids, orders[i].ID)
		orders[i].Tickets = make([]domain.Ticket, 0)
	}

	rows, err := r.db.Query(ctx, `SELECT t.id, t.order_id, t."row", t.seat, f.id, f.departure_time, src.name, dst.name
		FROM tickets t
		JOIN flights f ON f.id = t.flight_id
		JOIN routes r ON r.id = f.route_id
		JOIN airports src ON src.id = r.source_id
		JOIN airports dst ON dst.id = r.destination_id
		WHERE t.order_id = ANY($1)
		ORDER BY t.flight_id, t."row", t.seat`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		t := domain.Ticket{Flight: &domain.Flight{
			Route: &domain.Route{Source: &domain.Airport{}, Destination: &domain.Airport{}},
		}}
		if err := rows.Scan(&t.ID, &t.OrderID, &t.Row, &t.Seat, &t.Flight.ID, &t.Flight.DepartureTime,
			&t.Flight.Route.Source.Name, &t.Flight.Route.Destination.Name); err != nil {
			return err
		}
		t.FlightID = t.Flight.ID
		i := index[t.OrderID]
		orders[i].Tickets = append(orders[i].Tickets, t)
	}
	return rows.Err()
}

type pgOrderTx struct {
	tx pgx.Tx
}

func (t *pgOrderTx) SeatGrids(ctx context.Context, flightIDs []int64) (map[int64]domain.SeatGrid, error) {
	rows, err := t.tx.Query(ctx, `SELECT f.id, a.rows, a.seats_in_row
		FROM flights f JOIN airplanes a ON a.id = f.airplane_id
		WHERE f.id = ANY($1)
		FOR SHARE OF f, a`, flightIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grids := make(map[int64]domain.SeatGrid, len(flightIDs))
	for rows.Next() {
		var (
			id   int64
			grid domain.SeatGrid
		)
		if err := rows.Scan(&id, &grid.Rows, &grid.SeatsInRow); err != nil {
			return nil, err
		}
		grids[id] = grid
	}
	return grids, rows.Err()
}

func (t *pgOrderTx) TakenSeats(ctx context.Context, tickets []domain.TicketSpec) (map[int64]map[domain.Seat]bool, error) {
	flights, rowNums, seats := seatTuples(tickets)
	rows, err := t.tx.Query(ctx, `
		SELECT t.flight_id, t."row", t.seat
		FROM tickets t
		JOIN unnest($1::bigint[], $2::int[], $3::int[]) AS r(flight_id, "row", seat)
		  ON t.flight_id = r.flight_id AND t."row" = r."row" AND t.seat = r.seat`,
		flights, rowNums, seats)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taken := make(map[int64]map[domain.Seat]bool)
	for rows.Next() {
		var (
			flightID int64
			s        domain.Seat
		)
		if err := rows.Scan(&flightID, &s.Row, &s.Seat); err != nil {
			return nil, err
		}
		if taken[flightID] == nil {
			taken[flightID] = make(map[domain.Seat]bool)
		}
		taken[flightID][s] = true
	}
	return taken, rows.Err()
}

// seatTuples splits tickets into the parallel arrays unnest expects.
func seatTuples(tickets []domain.TicketSpec) (flights []int64, rows, seats []int) {
	flights = make([]int64, len(tickets))
	rows = make([]int, len(tickets))
	seats = make([]int, len(tickets))
	for i, spec := range tickets {
		flights[i], rows[i], seats[i] = spec.FlightID, spec.Row, spec.Seat
	}
	return flights, rows, seats
}

func (t *pgOrderTx) CreateOrder(ctx context.Context, userID int64) (*domain.Order, error) {
	o := &domain.Order{UserID: userID}
	err := t.tx.QueryRow(ctx, `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, userID).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return o, nil
}

func (t *pgOrderTx) CreateTicket(ctx context.Context, orderID int64, spec domain.TicketSpec) (*domain.Ticket, error) {
	ticket := &domain.Ticket{OrderID: orderID, FlightID: spec.FlightID, Row: spec.Row, Seat: spec.Seat}
	err := t.tx.QueryRow(ctx, `INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		spec.Row, spec.Seat, spec.FlightID, orderID).Scan(&ticket.ID)
	if err != nil {
		return nil, translateError(err)
	}
	return ticket, nil
}

var _ OrderRepository = (*PGOrderRepository)(nil)
