package mocks

import (
	"context"

	"crmapi/internal/model"
	"crmapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockGeoService struct {
	mock.Mock
}

func (m *MockGeoService) ListCountries(ctx context.Context) ([]model.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Country), args.Error(1)
}

func (m *MockGeoService) GetCountry(ctx context.Context, id int64) (*model.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *MockGeoService) CreateCountry(ctx context.Context, in service.CountryInput) (*model.Country, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *MockGeoService) UpdateCountry(ctx context.Context, id int64, in service.CountryInput) (*model.Country, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *MockGeoService) DeleteCountry(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGeoService) ListStates(ctx context.Context, countryID *int64) ([]model.State, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.State), args.Error(1)
}

func (m *MockGeoService) GetState(ctx context.Context, id int64) (*model.State, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *MockGeoService) CreateState(ctx context.Context, in service.StateInput) (*model.State, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *MockGeoService) UpdateState(ctx context.Context, id int64, in service.StateInput) (*model.State, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *MockGeoService) DeleteState(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGeoService) ListCities(ctx context.Context, stateID *int64) ([]model.City, error) {
	args := m.Called(ctx, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.City), args.Error(1)
}

func (m *MockGeoService) GetCity(ctx context.Context, id int64) (*model.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *MockGeoService) CreateCity(ctx context.Context, in service.CityInput) (*model.City, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *MockGeoService) UpdateCity(ctx context.Context, id int64, in service.CityInput) (*model.City, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *MockGeoService) DeleteCity(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGeoService) Seed(ctx context.Context, data []service.SeedCountry) (*service.SeedReport, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SeedReport), args.Error(1)
}
