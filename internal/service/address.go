package service

import (
	"context"
	"strings"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// AddressWriteInput is the write representation of a standalone address.
type AddressWriteInput struct {
	CustomerID int64   `json:"customer_id" validate:"required,gt=0"`
	Street     string  `json:"street" validate:"required,max=255"`
	CityID     int64   `json:"city_id" validate:"required,gt=0"`
	ZipCode    *string `json:"zip_code" validate:"omitempty,max=20"`
}

func (in *AddressWriteInput) record() repository.AddressRecord {
	return repository.AddressRecord{
		CustomerID: in.CustomerID,
		Street:     strings.TrimSpace(in.Street),
		CityID:     in.CityID,
		ZipCode:    trimmed(in.ZipCode),
	}
}

// AddressService manages individual addresses outside of the customer aggregate.
type AddressService interface {
	// List returns addresses, restricted to one customer when customerID is set.
	List(ctx context.Context, customerID *int64) ([]model.Address, error)
	Get(ctx context.Context, id int64) (*model.Address, error)
	Create(ctx context.Context, in AddressWriteInput) (*model.Address, error)
	Update(ctx context.Context, id int64, in AddressWriteInput) (*model.Address, error)
	Delete(ctx context.Context, id int64) error
}

type addressService struct {
	repo repository.AddressRepository
}

// NewAddressService constructs a new AddressService.
func NewAddressService(repo repository.AddressRepository) AddressService {
	return &addressService{repo: repo}
}

func (s *addressService) List(ctx context.Context, customerID *int64) ([]model.Address, error) {
	return s.repo.List(ctx, customerID)
}

func (s *addressService) Get(ctx context.Context, id int64) (*model.Address, error) {
	a, err := s.repo.FindByID(ctx, id)
	return a, mapRepoError(err)
}

func (s *addressService) Create(ctx context.Context, in AddressWriteInput) (*model.Address, error) {
	rec := in.record()
	in.Street = rec.Street
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	a, err := s.repo.Create(ctx, rec)
	return a, mapRepoError(err)
}

func (s *addressService) Update(ctx context.Context, id int64, in AddressWriteInput) (*model.Address, error) {
	rec := in.record()
	in.Street = rec.Street
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	a, err := s.repo.Update(ctx, id, rec)
	return a, mapRepoError(err)
}

func (s *addressService) Delete(ctx context.Context, id int64) error {
	return mapRepoError(s.repo.Delete(ctx, id))
}
