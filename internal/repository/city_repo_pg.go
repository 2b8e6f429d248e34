package repository

import (
	"context"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CityRepository interface {
	List(ctx context.Context, page Page) ([]domain.City, int, error)
	GetByID(ctx context.Context, id int64) (*domain.City, error)
	Create(ctx context.Context, city *domain.City) error
	Update(ctx context.Context, city *domain.City) error
	Delete(ctx context.Context, id int64) error
}

type PGCityRepository struct {
	db *pgxpool.Pool
}

func NewCityRepository(db *pgxpool.Pool) CityRepository {
	return &PGCityRepository{db: db}
}

const citySelect = `SELECT ci.id, ci.name, co.id, co.name FROM cities ci JOIN countries co ON co.id = ci.country_id`

func (r *PGCityRepository) List(ctx context.Context, page Page) ([]domain.City, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM cities`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, citySelect+` ORDER BY ci.id LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, 0, err
		}
		cities = append(cities, *c)
	}
	return cities, total, rows.Err()
}

func (r *PGCityRepository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	c, err := scanCity(r.db.QueryRow(ctx, citySelect+` WHERE ci.id=$1`, id))
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

func (r *PGCityRepository) Create(ctx context.Context, city *domain.City) error {
	err := r.db.QueryRow(ctx, `INSERT INTO cities (name, country_id) VALUES ($1, $2) RETURNING id`, city.Name, city.CountryID).Scan(&city.ID)
	return translateError(err)
}

func (r *PGCityRepository) Update(ctx context.Context, city *domain.City) error {
	return execOne(ctx, r.db, `UPDATE cities SET name=$1, country_id=$2 WHERE id=$3`, city.Name, city.CountryID, city.ID)
}

func (r *PGCityRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM cities WHERE id=$1`, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCity(row rowScanner) (*domain.City, error) {
	var c domain.City
	country := &domain.Country{}
	if err := row.Scan(&c.ID, &c.Name, &country.ID, &country.Name); err != nil {
		return nil, err
	}
	c.CountryID = country.ID
	c.Country = country
	return &c, nil
}

var _ CityRepository = (*PGCityRepository)(nil)
