package repository

import (
	"context"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetImage(ctx context.Context, id int64, image string) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userSelect = `SELECT id, email, username, password_hash, is_staff, user_image, created_at FROM users`

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (email, username, password_hash, is_staff) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		user.Email, user.Username, user.PasswordHash, user.IsStaff).Scan(&user.ID, &user.CreatedAt)
	return translateError(err)
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.get(ctx, userSelect+` WHERE id=$1`, id)
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, userSelect+` WHERE lower(email)=lower($1)`, email)
}

func (r *PGUserRepository) Update(ctx context.Context, user *domain.User) error {
	return execOne(ctx, r.db, `UPDATE users SET email=$1, username=$2, password_hash=$3, is_staff=$4 WHERE id=$5`,
		user.Email, user.Username, user.PasswordHash, user.IsStaff, user.ID)
}

func (r *PGUserRepository) SetImage(ctx context.Context, id int64, image string) error {
	return execOne(ctx, r.db, `UPDATE users SET user_image=$1 WHERE id=$2`, image, id)
}

func (r *PGUserRepository) get(ctx context.Context, sql string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, sql, arg).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.IsStaff, &u.Image, &u.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
