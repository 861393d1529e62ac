package service

import (
	"context"
	"testing"

	"crmapi/internal/model"
	"crmapi/internal/repository"
	repoMocks "crmapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddressService_Create(t *testing.T) {
	ctx := context.Background()
	zip := "  "

	mRepo := new(repoMocks.MockAddressRepository)
	mRepo.On("Create", ctx, repository.AddressRecord{CustomerID: 1, Street: "1 Main St", CityID: 7}).
		Return(&model.Address{ID: 11, CustomerID: 1}, nil)
	svc := NewAddressService(mRepo)

	got, err := svc.Create(ctx, AddressWriteInput{CustomerID: 1, Street: " 1 Main St ", CityID: 7, ZipCode: &zip})
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)

	_, err = svc.Create(ctx, AddressWriteInput{Street: "   ", CityID: 7})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "street")
	assert.Contains(t, ve.Fields, "customer_id")

	mRepo.AssertExpectations(t)
}

func TestAddressService_UpdateUnknownCustomer(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockAddressRepository)
	mRepo.On("Update", ctx, int64(3), mock.Anything).
		Return(nil, &repository.ConstraintError{Err: repository.ErrInvalidReference, Constraint: "addresses_customer_id_fkey"})

	_, err := NewAddressService(mRepo).Update(ctx, 3, AddressWriteInput{CustomerID: 404, Street: "x", CityID: 7})

	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.ErrorContains(t, err, "customer_id")
}

func TestAddressService_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockAddressRepository)
	mRepo.On("FindByID", ctx, int64(5)).Return(nil, repository.ErrNotFound)
	mRepo.On("Delete", ctx, int64(5)).Return(repository.ErrNotFound)
	svc := NewAddressService(mRepo)

	_, err := svc.Get(ctx, 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 5), ErrNotFound)
}
