package repository

import (
	"context"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirportRepository interface {
	List(ctx context.Context, page Page) ([]domain.Airport, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) error
	Update(ctx context.Context, airport *domain.Airport) error
	Delete(ctx context.Context, id int64) error
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

const airportSelect = `SELECT ap.id, ap.name, co.id, co.name, ci.id, ci.name
	FROM airports ap
	JOIN countries co ON co.id = ap.country_id
	JOIN cities ci ON ci.id = ap.city_id`

func (r *PGAirportRepository) List(ctx context.Context, page Page) ([]domain.Airport, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM airports`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, airportSelect+` ORDER BY ap.id LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		a, err := scanAirport(rows)
		if err != nil {
			return nil, 0, err
		}
		airports = append(airports, *a)
	}
	return airports, total, rows.Err()
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	a, err := scanAirport(r.db.QueryRow(ctx, airportSelect+` WHERE ap.id=$1`, id))
	if err != nil {
		return nil, translateError(err)
	}
	return a, nil
}

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airports (name, country_id, city_id) VALUES ($1, $2, $3) RETURNING id`,
		airport.Name, airport.CountryID, airport.CityID).Scan(&airport.ID)
	return translateError(err)
}

func (r *PGAirportRepository) Update(ctx context.Context, airport *domain.Airport) error {
	return execOne(ctx, r.db, `UPDATE airports SET name=$1, country_id=$2, city_id=$3 WHERE id=$4`,
		airport.Name, airport.CountryID, airport.CityID, airport.ID)
}

func (r *PGAirportRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM airports WHERE id=$1`, id)
}

// scanAirport reads id, name, country id/name, city id/name. The city's country is the airport's.
func scanAirport(row rowScanner) (*domain.Airport, error) {
	var a domain.Airport
	country := &domain.Country{}
	city := &domain.City{}
	if err := row.Scan(&a.ID, &a.Name, &country.ID, &country.Name, &city.ID, &city.Name); err != nil {
		return nil, err
	}
	city.CountryID = country.ID
	city.Country = country
	a.CountryID = country.ID
	a.CityID = city.ID
	a.Country = country
	a.City = city
	return &a, nil
}

var _ AirportRepository = (*PGAirportRepository)(nil)
