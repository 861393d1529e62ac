package repository

import (
	"context"

	"crmapi/internal/model"
)

// AddressRepository defines data access for individual addresses.
type AddressRepository interface {
	Create(ctx context.Context, a AddressRecord) (*model.Address, error)
	FindByID(ctx context.Context, id int64) (*model.Address, error)
	// List returns addresses ordered by id, optionally restricted to one customer.
	List(ctx context.Context, customerID *int64) ([]model.Address, error)
	Update(ctx context.Context, id int64, a AddressRecord) (*model.Address, error)
	Delete(ctx context.Context, id int64) error
}
