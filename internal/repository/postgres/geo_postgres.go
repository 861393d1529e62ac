package postgres

import (
	"context"
	"database/sql"
	"errors"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// GeoPostgres is a PostgreSQL implementation of repository.GeoRepository.
type GeoPostgres struct {
	db *sql.DB
}

// NewGeoPostgres creates a new GeoPostgres repository.
func NewGeoPostgres(db *sql.DB) *GeoPostgres {
	return &GeoPostgres{db: db}
}

var _ repository.GeoRepository = (*GeoPostgres)(nil)

const (
	stateSelect = `
	SELECT s.id, s.name, co.id, co.name, co.code
	FROM states s
	JOIN countries co ON co.id = s.country_id`

	citySelect = `
	SELECT ci.id, ci.name, s.id, s.name, co.id, co.name, co.code
	FROM cities ci
	JOIN states s ON s.id = ci.state_id
	JOIN countries co ON co.id = s.country_id`
)

func scanCountry(sc scanner) (model.Country, error) {
	var c model.Country
	err := sc.Scan(&c.ID, &c.Name, &c.Code)
	return c, err
}

func scanState(sc scanner) (model.State, error) {
	var s model.State
	err := sc.Scan(&s.ID, &s.Name, &s.Country.ID, &s.Country.Name, &s.Country.Code)
	return s, err
}

func scanCity(sc scanner) (model.City, error) {
	var c model.City
	err := sc.Scan(&c.ID, &c.Name, &c.State.ID, &c.State.Name, &c.State.Country.ID, &c.State.Country.Name, &c.State.Country.Code)
	return c, err
}

// collect drains rows through scan into a non-nil slice.
func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// --- countries ---

func (r *GeoPostgres) CreateCountry(ctx context.Context, c model.Country) (*model.Country, error) {
	const q = `INSERT INTO countries (name, code) VALUES ($1, $2) RETURNING id, name, code`
	out, err := scanCountry(r.db.QueryRowContext(ctx, q, c.Name, c.Code))
	if err != nil {
		return nil, translateWrite(err)
	}
	return &out, nil
}

func (r *GeoPostgres) FindCountry(ctx context.Context, id int64) (*model.Country, error) {
	const q = `SELECT id, name, code FROM countries WHERE id = $1`
	out, err := scanCountry(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, translate(err, nil)
	}
	return &out, nil
}

func (r *GeoPostgres) ListCountries(ctx context.Context) ([]model.Country, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, code FROM countries ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCountry)
}

func (r *GeoPostgres) UpdateCountry(ctx context.Context, c model.Country) (*model.Country, error) {
	const q = `UPDATE countries SET name = $1, code = $2 WHERE id = $3 RETURNING id, name, code`
	out, err := scanCountry(r.db.QueryRowContext(ctx, q, c.Name, c.Code, c.ID))
	if err != nil {
		return nil, translateWrite(err)
	}
	return &out, nil
}

// DeleteCountry removes the country with its states and cities.
// Fails with ErrReferenced while any address lives in one of those cities.
func (r *GeoPostgres) DeleteCountry(ctx context.Context, id int64) error {
	return r.delete(ctx, `DELETE FROM countries WHERE id = $1`, id)
}

// EnsureCountry upserts on the country code and returns the stored row.
func (r *GeoPostgres) EnsureCountry(ctx context.Context, name, code string) (*model.Country, error) {
	const q = `
		INSERT INTO countries (name, code) VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, code`
	out, err := scanCountry(r.db.QueryRowContext(ctx, q, name, code))
	if err != nil {
		return nil, translateWrite(err)
	}
	return &out, nil
}

// --- states ---

func (r *GeoPostgres) CreateState(ctx context.Context, name string, countryID int64) (*model.State, error) {
	const q = `
		WITH s AS (
			INSERT INTO states (name, country_id) VALUES ($1, $2) RETURNING id, name, country_id
		)
		SELECT s.id, s.name, co.id, co.name, co.code
		FROM s JOIN countries co ON co.id = s.country_id`
	out, err := scanState(r.db.QueryRowContext(ctx, q, name, countryID))
	if err != nil {
		return nil, translateWrite(err)
	}
	return &out, nil
}

func (r *GeoPostgres) FindState(ctx context.Context, id int64) (*model.State, error) {
	out, err := scanState(r.db.QueryRowContext(ctx, stateSelect+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, translate(err, nil)
	}
	return &out, nil
}

// ListStates returns states ordered by name, restricted to one country when countryID is set.
func (r *GeoPostgres) ListStates(ctx context.Context, countryID *int64) ([]model.State, error) {
	q, args := stateSelect, []any{}
	if countryID != nil {
		q += ` WHERE s.country_id = $1`
		args = append(args, *countryID)
	}
	rows, err := r.db.QueryContext(ctx, q+` ORDER BY s.name, s.id`, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanState)
}

func (r *GeoPostgres) UpdateState(ctx context.Context, id int64, name string, countryID int64) (*model.State, error) {
	const q = `
		WITH s AS (
			UPDATE states SET name = $1, country_id = $2 WHERE id = $3 RETURNING id, name, country_id
		)
		SELECT s.id, s.name, co.id, co.name, co.code
		FROM s JOIN countries co ON co.id = s.country_id`
	out, err := scanState(r.db.QueryRowContext(ctx, q, name, countryID, id))
	if err != nil {
		return nil, translateWrite(err)
	}
	return &out, nil
}

func (r *GeoPostgres) DeleteState(ctx context.Context, id int64) error {
	return r.delete(ctx, `DELETE FROM states WHERE id = $1`, id)
}

// EnsureState returns the state named name inside the country, inserting it when missing.
func (r *GeoPostgres) EnsureState(ctx context.Context, name string, countryID int64) (*model.State, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM states WHERE name = $1 AND country_id = $2`, name, countryID).Scan(&id)
	switch {
	case err == nil:
		return r.FindState(ctx, id)
	case errors.Is(err, sql.ErrNoRows):
		return r.CreateState(ctx, name, countryID)
	default:
		return nil, err
	}
}

// --- cities ---

func (r *GeoPostgres) CreateCity(ctx context.Context, name string, stateID int64) (*model.City, error) {
	const q = `
		WITH ci AS (
			INSERT INTO cities (name, state_id) VALUES ($1, $2) RETURNING id, name, state_id
		)
		SELECT ci.id, ci.name, s.id, s.name, co.id, co.name, co.code
		FROM ci
		JOIN states s ON s.id = ci.state_id
		JOIN countries co ON co.id = s.country_id`
	out, err := scanCity(r.db.QueryRowContext(ctx, q, name, stateID))
	if err != nil {
		return nil, translateWrite(err)
	}
	return &out, nil
}

func (r *GeoPostgres) FindCity(ctx context.Context, id int64) (*model.City, error) {
	out, err := scanCity(r.db.QueryRowContext(ctx, citySelect+` WHERE ci.id = $1`, id))
	if err != nil {
		return nil, translate(err, nil)
	}
	return &out, nil
}

// ListCities returns cities ordered by name, restricted to one state when stateID is set.
func (r *GeoPostgres) ListCities(ctx context.Context, stateID *int64) ([]model.City, error) {
	q, args := citySelect, []any{}
	if stateID != nil {
		q += ` WHERE ci.state_id = $1`
		args = append(args, *stateID)
	}
	rows, err := r.db.QueryContext(ctx, q+` ORDER BY ci.name, ci.id`, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCity)
}

func (r *GeoPostgres) UpdateCity(ctx context.Context, id int64, name string, stateID int64) (*model.City, error) {
	const q = `
		WITH ci AS (
			UPDATE cities SET name = $1, state_id = $2 WHERE id = $3 RETURNING id, name, state_id
		)
		SELECT ci.id, ci.name, s.id, s.name, co.id, co.name, co.code
		FROM ci
		JOIN states s ON s.id = ci.state_id
		JOIN countries co ON co.id = s.country_id`
	out, err := scanCity(r.db.QueryRowContext(ctx, q, name, stateID, id))
	if err != nil {
		return nil, translateWrite(err)
	}
	return &out, nil
}

func (r *GeoPostgres) DeleteCity(ctx context.Context, id int64) error {
	return r.delete(ctx, `DELETE FROM cities WHERE id = $1`, id)
}

// EnsureCity returns the city named name inside the state, inserting it when missing.
func (r *GeoPostgres) EnsureCity(ctx context.Context, name string, stateID int64) (*model.City, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM cities WHERE name = $1 AND state_id = $2`, name, stateID).Scan(&id)
	switch {
	case err == nil:
		return r.FindCity(ctx, id)
	case errors.Is(err, sql.ErrNoRows):
		return r.CreateCity(ctx, name, stateID)
	default:
		return nil, err
	}
}

func (r *GeoPostgres) delete(ctx context.Context, q string, id int64) error {
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return translateDelete(err)
	}
	return expectAffected(res)
}
