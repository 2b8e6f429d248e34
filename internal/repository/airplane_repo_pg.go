package repository

import (
	"context"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirplaneRepository interface {
	List(ctx context.Context, filter AirplaneFilter, page Page) ([]domain.Airplane, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	Create(ctx context.Context, airplane *domain.Airplane) error
	Update(ctx context.Context, airplane *domain.Airplane) error
	Delete(ctx context.Context, id int64) error
	SetImage(ctx context.Context, id int64, image string) error
}

type PGAirplaneRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneRepository(db *pgxpool.Pool) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

const airplaneSelect = `SELECT a.id, a.name, a.rows, a.seats_in_row, a.airplane_image, t.id, t.name
	FROM airplanes a
	LEFT JOIN airplane_types t ON t.id = a.airplane_type_id`

func (r *PGAirplaneRepository) List(ctx context.Context, filter AirplaneFilter, page Page) ([]domain.Airplane, int, error) {
	p := filter.predicates()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM airplanes a`+p.where(), p.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	window, args := p.paginate(page)
	rows, err := r.db.Query(ctx, airplaneSelect+p.where()+` ORDER BY a.id`+window, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		a, err := scanAirplane(rows)
		if err != nil {
			return nil, 0, err
		}
		airplanes = append(airplanes, *a)
	}
	return airplanes, total, rows.Err()
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	a, err := scanAirplane(r.db.QueryRow(ctx, airplaneSelect+` WHERE a.id=$1`, id))
	if err != nil {
		return nil, translateError(err)
	}
	return a, nil
}

func (r *PGAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplanes (name, airplane_type_id, rows, seats_in_row) VALUES ($1, $2, $3, $4) RETURNING id`,
		airplane.Name, airplane.AirplaneTypeID, airplane.Rows, airplane.SeatsInRow).Scan(&airplane.ID)
	return translateError(err)
}

func (r *PGAirplaneRepository) Update(ctx context.Context, airplane *domain.Airplane) error {
	return execOne(ctx, r.db, `UPDATE airplanes SET name=$1, airplane_type_id=$2, rows=$3, seats_in_row=$4 WHERE id=$5`,
		airplane.Name, airplane.AirplaneTypeID, airplane.Rows, airplane.SeatsInRow, airplane.ID)
}

func (r *PGAirplaneRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM airplanes WHERE id=$1`, id)
}

func (r *PGAirplaneRepository) SetImage(ctx context.Context, id int64, image string) error {
	return execOne(ctx, r.db, `UPDATE airplanes SET airplane_image=$1 WHERE id=$2`, image, id)
}

func scanAirplane(row rowScanner) (*domain.Airplane, error) {
	var (
		a        domain.Airplane
		typeID   *int64
		typeName *string
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.Image, &typeID, &typeName); err != nil {
		return nil, err
	}
	if typeID != nil {
		a.AirplaneTypeID = typeID
		a.AirplaneType = &domain.AirplaneType{ID: *typeID}
		if typeName != nil {
			a.AirplaneType.Name = *typeName
		}
	}
	return &a, nil
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
