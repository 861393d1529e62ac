package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// withTx runs fn inside a transaction, committing on success and rolling back on any error.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// translateWrite maps driver errors of INSERT/UPDATE statements to repository errors.
func translateWrite(err error) error {
	return translate(err, repository.ErrInvalidReference)
}

// translateDelete maps driver errors of DELETE statements to repository errors.
func translateDelete(err error) error {
	return translate(err, repository.ErrReferenced)
}

func translate(err error, onForeignKey error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &repository.ConstraintError{Err: repository.ErrDuplicate, Constraint: pgErr.ConstraintName}
		case pgForeignKeyViolation:
			if onForeignKey == nil {
				return err
			}
			return &repository.ConstraintError{Err: onForeignKey, Constraint: pgErr.ConstraintName}
		}
	}
	return err
}

// expectAffected turns a zero-row result into ErrNotFound.
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// placeholders renders "$from, $from+1, ..." for n arguments.
func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(parts, ", ")
}

const addressSelect = `
	SELECT a.id, a.customer_id, a.street, a.zip_code, a.created_at,
	       ci.id, ci.name, s.id, s.name, co.id, co.name, co.code
	FROM addresses a
	JOIN cities ci ON ci.id = a.city_id
	JOIN states s ON s.id = ci.state_id
	JOIN countries co ON co.id = s.country_id`

func scanAddress(sc scanner) (model.Address, error) {
	var a model.Address
	err := sc.Scan(
		&a.ID,
		&a.CustomerID,
		&a.Street,
		&a.ZipCode,
		&a.CreatedAt,
		&a.City.ID,
		&a.City.Name,
		&a.City.State.ID,
		&a.City.State.Name,
		&a.City.State.Country.ID,
		&a.City.State.Country.Name,
		&a.City.State.Country.Code,
	)
	return a, err
}

func queryAddresses(ctx context.Context, q querier, query string, args ...any) ([]model.Address, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
