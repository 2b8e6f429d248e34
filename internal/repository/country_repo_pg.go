package repository

import (
	"context"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CountryRepository interface {
	ListAll(ctx context.Context) ([]domain.Country, error)
	GetByID(ctx context.Context, id int64) (*domain.Country, error)
	Create(ctx context.Context, country *domain.Country) error
	Update(ctx context.Context, country *domain.Country) error
	Delete(ctx context.Context, id int64) error
}

type PGCountryRepository struct {
	db *pgxpool.Pool
}

func NewCountryRepository(db *pgxpool.Pool) CountryRepository {
	return &PGCountryRepository{db: db}
}

func (r *PGCountryRepository) ListAll(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM countries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	countries := make([]domain.Country, 0)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *PGCountryRepository) GetByID(ctx context.Context, id int64) (*domain.Country, error) {
	var c domain.Country
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM countries WHERE id=$1`, id).Scan(&c.ID, &c.Name); err != nil {
		return nil, translateError(err)
	}

	rows, err := r.db.Query(ctx, `SELECT id, name FROM cities WHERE country_id=$1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c.Cities = make([]domain.City, 0)
	for rows.Next() {
		city := domain.City{CountryID: id}
		if err := rows.Scan(&city.ID, &city.Name); err != nil {
			return nil, err
		}
		c.Cities = append(c.Cities, city)
	}
	return &c, rows.Err()
}

func (r *PGCountryRepository) Create(ctx context.Context, country *domain.Country) error {
	err := r.db.QueryRow(ctx, `INSERT INTO countries (name) VALUES ($1) RETURNING id`, country.Name).Scan(&country.ID)
	return translateError(err)
}

func (r *PGCountryRepository) Update(ctx context.Context, country *domain.Country) error {
	return execOne(ctx, r.db, `UPDATE countries SET name=$1 WHERE id=$2`, country.Name, country.ID)
}

func (r *PGCountryRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM countries WHERE id=$1`, id)
}

var _ CountryRepository = (*PGCountryRepository)(nil)
