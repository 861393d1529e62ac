package repository

import (
	"context"

	"crmapi/internal/model"
)

// GeoRepository defines data access for the country → state → city hierarchy.
// Deletes cascade downwards and fail with ErrReferenced when an address still points into the subtree.
type GeoRepository interface {
	CreateCountry(ctx context.Context, c model.Country) (*model.Country, error)
	FindCountry(ctx context.Context, id int64) (*model.Country, error)
	ListCountries(ctx context.Context) ([]model.Country, error)
	UpdateCountry(ctx context.Context, c model.Country) (*model.Country, error)
	DeleteCountry(ctx context.Context, id int64) error

	CreateState(ctx context.Context, name string, countryID int64) (*model.State, error)
	FindState(ctx context.Context, id int64) (*model.State, error)
	ListStates(ctx context.Context, countryID *int64) ([]model.State, error)
	UpdateState(ctx context.Context, id int64, name string, countryID int64) (*model.State, error)
	DeleteState(ctx context.Context, id int64) error

	CreateCity(ctx context.Context, name string, stateID int64) (*model.City, error)
	FindCity(ctx context.Context, id int64) (*model.City, error)
	ListCities(ctx context.Context, stateID *int64) ([]model.City, error)
	UpdateCity(ctx context.Context, id int64, name string, stateID int64) (*model.City, error)
	DeleteCity(ctx context.Context, id int64) error

	// EnsureCountry, EnsureState and EnsureCity return the existing row matching the natural key
	// or insert it. They back reference data seeding.
	EnsureCountry(ctx context.Context, name, code string) (*model.Country, error)
	EnsureState(ctx context.Context, name string, countryID int64) (*model.State, error)
	EnsureCity(ctx context.Context, name string, stateID int64) (*model.City, error)
}
