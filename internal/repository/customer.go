package repository

import (
	"context"

	"crmapi/internal/model"
)

// CustomerFilter narrows customer listings. Zero values disable a criterion.
type CustomerFilter struct {
	// Search is a case-insensitive substring matched against name or email.
	Search string
	// CountryID keeps customers with at least one address in the country.
	CountryID *int64
	// StateID keeps customers with at least one address in the state.
	StateID *int64
}

// AddressRecord is the write shape of an address row.
type AddressRecord struct {
	CustomerID int64
	Street     string
	CityID     int64
	ZipCode    *string
}

// CustomerRepository defines data access for customers and their owned addresses.
type CustomerRepository interface {
	// Create inserts the customer and its addresses in one transaction and returns the stored aggregate.
	Create(ctx context.Context, c *model.Customer, addresses []AddressRecord) (*model.Customer, error)

	// Update overwrites the customer's scalar fields and replaces its whole address set
	// in one transaction. Returns ErrNotFound if the customer does not exist.
	Update(ctx context.Context, c *model.Customer, addresses []AddressRecord) (*model.Customer, error)

	// FindByID returns a customer with its addresses and their geography.
	FindByID(ctx context.Context, id int64) (*model.Customer, error)

	// List returns a filtered page of customers (newest first) with addresses and the total match count.
	List(ctx context.Context, f CustomerFilter, pq PageQuery) (*PageResult[model.Customer], error)

	// ListAll returns every customer matching f with addresses, ordered by id.
	ListAll(ctx context.Context, f CustomerFilter) ([]model.Customer, error)

	// Delete removes a customer; its addresses go with it. Returns ErrNotFound if nothing was deleted.
	Delete(ctx context.Context, id int64) error

	// Stats returns the total customer count and distinct customer counts per country.
	Stats(ctx context.Context) (*model.DashboardStats, error)
}
