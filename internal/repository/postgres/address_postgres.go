package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// AddressPostgres is a PostgreSQL implementation of repository.AddressRepository.
type AddressPostgres struct {
	db *sql.DB
}

// NewAddressPostgres creates a new AddressPostgres repository.
func NewAddressPostgres(db *sql.DB) *AddressPostgres {
	return &AddressPostgres{db: db}
}

var _ repository.AddressRepository = (*AddressPostgres)(nil)

// Create inserts an address; unknown customer or city ids yield ErrInvalidReference.
func (r *AddressPostgres) Create(ctx context.Context, a repository.AddressRecord) (*model.Address, error) {
	const q = `INSERT INTO addresses (customer_id, street, city_id, zip_code) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, a.CustomerID, a.Street, a.CityID, a.ZipCode).Scan(&id); err != nil {
		return nil, translateWrite(err)
	}
	return r.FindByID(ctx, id)
}

func (r *AddressPostgres) FindByID(ctx context.Context, id int64) (*model.Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx, addressSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, translate(err, nil)
	}
	return &a, nil
}

func (r *AddressPostgres) List(ctx context.Context, customerID *int64) ([]model.Address, error) {
	q, args := addressSelect, []any{}
	if customerID != nil {
		q += ` WHERE a.customer_id = $1`
		args = append(args, *customerID)
	}
	return queryAddresses(ctx, r.db, q+` ORDER BY a.id`, args...)
}

func (r *AddressPostgres) Update(ctx context.Context, id int64, a repository.AddressRecord) (*model.Address, error) {
	const q = `UPDATE addresses SET customer_id = $1, street = $2, city_id = $3, zip_code = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, q, a.CustomerID, a.Street, a.CityID, a.ZipCode, id)
	if err != nil {
		return nil, translateWrite(err)
	}
	if err := expectAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *AddressPostgres) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	return expectAffected(res)
}
