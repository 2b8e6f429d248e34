package repository

import (
	"context"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context, filter FlightFilter, page Page) ([]domain.Flight, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// ticketsAvailableExpr is evaluated per row by the database; ticket rows are never loaded.
const ticketsAvailableExpr = `a.rows * a.seats_in_row - (SELECT count(*) FROM tickets t WHERE t.flight_id = f.id)`

const flightListSelect = `SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
		src.name, dst.name, a.name, a.rows, a.seats_in_row, ` + ticketsAvailableExpr + `
	FROM flights f
	JOIN routes r ON r.id = f.route_id
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id
	JOIN airplanes a ON a.id = f.airplane_id`

func (r *PGFlightRepository) List(ctx context.Context, filter FlightFilter, page Page) ([]domain.Flight, int, error) {
	p := filter.predicates()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM flights f`+p.where(), p.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	window, args := p.paginate(page)
	rows, err := r.db.Query(ctx, flightListSelect+p.where()+` ORDER BY f.departure_time, f.id`+window, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		f := domain.Flight{
			Route:    &domain.Route{Source: &domain.Airport{}, Destination: &domain.Airport{}},
			Airplane: &domain.Airplane{},
		}
		if err := rows.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime,
			&f.Route.Source.Name, &f.Route.Destination.Name,
			&f.Airplane.Name, &f.Airplane.Rows, &f.Airplane.SeatsInRow, &f.TicketsAvailable,
		); err != nil {
			return nil, 0, err
		}
		f.Route.ID = f.RouteID
		f.Airplane.ID = f.AirplaneID
		flights = append(flights, f)
		ids = append(ids, f.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	crew, err := loadCrew(ctx, r.db, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range flights {
		flights[i].Crew = crew[flights[i].ID]
		flights[i].CrewIDs = crewIDs(flights[i].Crew)
	}
	return flights, total, nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	var f domain.Flight
	err := r.db.QueryRow(ctx, `SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time, `+ticketsAvailableExpr+`
		FROM flights f JOIN airplanes a ON a.id = f.airplane_id WHERE f.id=$1`, id).
		Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime, &f.TicketsAvailable)
	if err != nil {
		return nil, translateError(err)
	}

	if f.Route, err = scanRoute(r.db.QueryRow(ctx, routeSelect+` WHERE r.id=$1`, f.RouteID)); err != nil {
		return nil, translateError(err)
	}
	if f.Airplane, err = scanAirplane(r.db.QueryRow(ctx, airplaneSelect+` WHERE a.id=$1`, f.AirplaneID)); err != nil {
		return nil, translateError(err)
	}

	crew, err := loadCrew(ctx, r.db, []int64{f.ID})
	if err != nil {
		return nil, err
	}
	f.Crew = crew[f.ID]
	if f.Crew == nil {
		f.Crew = make([]domain.Crew, 0)
	}
	f.CrewIDs = crewIDs(f.Crew)

	rows, err := r.db.Query(ctx, `SELECT "row", seat FROM tickets WHERE flight_id=$1 ORDER BY "row", seat`, f.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	f.TakenSeats = make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, err
		}
		f.TakenSeats = append(f.TakenSeats, s)
	}
	return &f, rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time) VALUES ($1, $2, $3, $4) RETURNING id`,
			flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).Scan(&flight.ID)
		if err != nil {
			return translateError(err)
		}
		return insertCrew(ctx, tx, flight.ID, flight.CrewIDs)
	})
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := execOne(ctx, tx, `UPDATE flights SET route_id=$1, airplane_id=$2, departure_time=$3, arrival_time=$4 WHERE id=$5`,
			flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime, flight.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM flight_crew WHERE flight_id=$1`, flight.ID); err != nil {
			return err
		}
		return insertCrew(ctx, tx, flight.ID, flight.CrewIDs)
	})
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM flights WHERE id=$1`, id)
}

func insertCrew(ctx context.Context, q querier, flightID int64, crew []int64) error {
	if len(crew) == 0 {
		return nil
	}
	_, err := q.Exec(ctx, `INSERT INTO flight_crew (flight_id, crew_id) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`, flightID, crew)
	return translateError(err)
}

func loadCrew(ctx context.Context, q querier, flightIDs []int64) (map[int64][]domain.Crew, error) {
	result := make(map[int64][]domain.Crew, len(flightIDs))
	if len(flightIDs) == 0 {
		return result, nil
	}

	rows, err := q.Query(ctx, `SELECT fc.flight_id, c.id, c.first_name, c.last_name
		FROM flight_crew fc JOIN crew c ON c.id = fc.crew_id
		WHERE fc.flight_id = ANY($1) ORDER BY c.id`, flightIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			flightID int64
			c        domain.Crew
		)
		if err := rows.Scan(&flightID, &c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		result[flightID] = append(result[flightID], c)
	}
	return result, rows.Err()
}

func crewIDs(crew []domain.Crew) []int64 {
	ids := make([]int64, 0, len(crew))
	for _, c := range crew {
		ids = append(ids, c.ID)
	}
	return ids
}

var _ FlightRepository = (*PGFlightRepository)(nil)
