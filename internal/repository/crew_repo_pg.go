package repository

import (
	"context"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CrewRepository interface {
	List(ctx context.Context, page Page) ([]domain.Crew, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Crew, error)
	Create(ctx context.Context, crew *domain.Crew) error
	Update(ctx context.Context, crew *domain.Crew) error
	Delete(ctx context.Context, id int64) error
}

type PGCrewRepository struct {
	db *pgxpool.Pool
}

func NewCrewRepository(db *pgxpool.Pool) CrewRepository {
	return &PGCrewRepository{db: db}
}

func (r *PGCrewRepository) List(ctx context.Context, page Page) ([]domain.Crew, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM crew`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM crew ORDER BY id LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	members := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, 0, err
		}
		members = append(members, c)
	}
	return members, total, rows.Err()
}

func (r *PGCrewRepository) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	var c domain.Crew
	if err := r.db.QueryRow(ctx, `SELECT id, first_name, last_name FROM crew WHERE id=$1`, id).Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *PGCrewRepository) Create(ctx context.Context, crew *domain.Crew) error {
	err := r.db.QueryRow(ctx, `INSERT INTO crew (first_name, last_name) VALUES ($1, $2) RETURNING id`, crew.FirstName, crew.LastName).Scan(&crew.ID)
	return translateError(err)
}

func (r *PGCrewRepository) Update(ctx context.Context, crew *domain.Crew) error {
	return execOne(ctx, r.db, `UPDATE crew SET first_name=$1, last_name=$2 WHERE id=$3`, crew.FirstName, crew.LastName, crew.ID)
}

func (r *PGCrewRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM crew WHERE id=$1`, id)
}

var _ CrewRepository = (*PGCrewRepository)(nil)
