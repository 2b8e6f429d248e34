package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes the repositories translate into validation errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type constraintMessage struct {
	field   string
	message string
}

var constraintMessages = map[string]constraintMessage{
	"countries_name_key":           {"name", "country with this name already exists."},
	"cities_country_name_key":      {domain.NonFieldErrors, "The fields country, name must make a unique set."},
	"cities_country_id_fkey":       {"country", "Invalid pk - object does not exist."},
	"airports_name_key":            {"name", "airport with this name already exists."},
	"airports_country_id_fkey":     {"country", "Invalid pk - object does not exist."},
	"airports_city_country_fkey":   {domain.NonFieldErrors, "The selected city does not belong to the selected country."},
	"routes_source_id_fkey":        {"source", "Invalid pk - object does not exist."},
	"routes_destination_id_fkey":   {"destination", "Invalid pk - object does not exist."},
	"routes_distinct_endpoints":    {domain.NonFieldErrors, "The source and destination airports must be different."},
	"airplanes_type_id_fkey":       {"airplane_type", "Invalid pk - object does not exist."},
	"airplanes_rows_check":         {"rows", "Ensure this value is greater than or equal to 0."},
	"airplanes_seats_in_row_check": {"seats_in_row", "Ensure this value is greater than or equal to 0."},
	"flights_route_id_fkey":        {"route", "Invalid pk - object does not exist."},
	"flights_airplane_id_fkey":     {"airplane", "Invalid pk - object does not exist."},
	"flight_crew_crew_id_fkey":     {"crew", "Invalid pk - object does not exist."},
	"tickets_flight_id_fkey":       {"flight", "Invalid pk - object does not exist."},
	"tickets_flight_row_seat_key":  {domain.NonFieldErrors, "The fields flight, row, seat must make a unique set."},
	"users_email_key":              {"email", "user with this email already exists."},
}

// translateError maps storage errors onto domain errors. Unknown errors pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolation, foreignKeyViolation, checkViolation:
		if m, ok := constraintMessages[pgErr.ConstraintName]; ok {
			return domain.NewValidationError(m.field, m.message)
		}
	}

	switch pgErr.Code {
	case uniqueViolation:
		return domain.NewValidationError(domain.NonFieldErrors, "Object with these values already exists.")
	case foreignKeyViolation:
		return domain.NewValidationError(domain.NonFieldErrors, "Referenced object does not exist.")
	case checkViolation:
		return domain.NewValidationError(domain.NonFieldErrors, "Value violates a data constraint.")
	}
	return err
}

// withTx runs fn inside a transaction that is rolled back on every path except a successful commit.
func withTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// execOne runs a mutating statement and reports ErrNotFound when no row matched.
func execOne(ctx context.Context, q querier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
