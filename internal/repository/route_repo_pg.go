package repository

import (
	"context"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RouteRepository interface {
	List(ctx context.Context, page Page) ([]domain.Route, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id int64) error
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

const routeSelect = `SELECT r.id, r.distance,
		src.id, src.name, src_co.id, src_co.name, src_ci.id, src_ci.name,
		dst.id, dst.name, dst_co.id, dst_co.name, dst_ci.id, dst_ci.name
	FROM routes r
	JOIN airports src ON src.id = r.source_id
	JOIN countries src_co ON src_co.id = src.country_id
	JOIN cities src_ci ON src_ci.id = src.city_id
	JOIN airports dst ON dst.id = r.destination_id
	JOIN countries dst_co ON dst_co.id = dst.country_id
	JOIN cities dst_ci ON dst_ci.id = dst.city_id`

func (r *PGRouteRepository) List(ctx context.Context, page Page) ([]domain.Route, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM routes`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, routeSelect+` ORDER BY r.id LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, 0, err
		}
		routes = append(routes, *route)
	}
	return routes, total, rows.Err()
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	route, err := scanRoute(r.db.QueryRow(ctx, routeSelect+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, translateError(err)
	}
	return route, nil
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance).Scan(&route.ID)
	return translateError(err)
}

func (r *PGRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	return execOne(ctx, r.db, `UPDATE routes SET source_id=$1, destination_id=$2, distance=$3 WHERE id=$4`,
		route.SourceID, route.DestinationID, route.Distance, route.ID)
}

func (r *PGRouteRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM routes WHERE id=$1`, id)
}

func scanRoute(row rowScanner) (*domain.Route, error) {
	var route domain.Route
	src := newAirportShell()
	dst := newAirportShell()
	if err := row.Scan(&route.ID, &route.Distance,
		&src.ID, &src.Name, &src.Country.ID, &src.Country.Name, &src.City.ID, &src.City.Name,
		&dst.ID, &dst.Name, &dst.Country.ID, &dst.Country.Name, &dst.City.ID, &dst.City.Name,
	); err != nil {
		return nil, err
	}
	for _, a := range []*domain.Airport{src, dst} {
		a.CountryID = a.Country.ID
		a.CityID = a.City.ID
		a.City.CountryID = a.Country.ID
		a.City.Country = a.Country
	}
	route.SourceID, route.Source = src.ID, src
	route.DestinationID, route.Destination = dst.ID, dst
	return &route, nil
}

func newAirportShell() *domain.Airport {
	return &domain.Airport{Country: &domain.Country{}, City: &domain.City{}}
}

var _ RouteRepository = (*PGRouteRepository)(nil)
