package mocks

import (
	"context"

	"crmapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockGeoRepository struct {
	mock.Mock
}

func (m *MockGeoRepository) CreateCountry(ctx context.Context, c model.Country) (*model.Country, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *MockGeoRepository) FindCountry(ctx context.Context, id int64) (*model.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *MockGeoRepository) ListCountries(ctx context.Context) ([]model.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Country), args.Error(1)
}

func (m *MockGeoRepository) UpdateCountry(ctx context.Context, c model.Country) (*model.Country, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *MockGeoRepository) DeleteCountry(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGeoRepository) CreateState(ctx context.Context, name string, countryID int64) (*model.State, error) {
	args := m.Called(ctx, name, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *MockGeoRepository) FindState(ctx context.Context, id int64) (*model.State, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *MockGeoRepository) ListStates(ctx context.Context, countryID *int64) ([]model.State, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.State), args.Error(1)
}

func (m *MockGeoRepository) UpdateState(ctx context.Context, id int64, name string, countryID int64) (*model.State, error) {
	args := m.Called(ctx, id, name, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *MockGeoRepository) DeleteState(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGeoRepository) CreateCity(ctx context.Context, name string, stateID int64) (*model.City, error) {
	args := m.Called(ctx, name, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *MockGeoRepository) FindCity(ctx context.Context, id int64) (*model.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *MockGeoRepository) ListCities(ctx context.Context, stateID *int64) ([]model.City, error) {
	args := m.Called(ctx, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.City), args.Error(1)
}

func (m *MockGeoRepository) UpdateCity(ctx context.Context, id int64, name string, stateID int64) (*model.City, error) {
	args := m.Called(ctx, id, name, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *MockGeoRepository) DeleteCity(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGeoRepository) EnsureCountry(ctx context.Context, name, code string) (*model.Country, error) {
	args := m.Called(ctx, name, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *MockGeoRepository) EnsureState(ctx context.Context, name string, countryID int64) (*model.State, error) {
	args := m.Called(ctx, name, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *MockGeoRepository) EnsureCity(ctx context.Context, name string, stateID int64) (*model.City, error) {
	args := m.Called(ctx, name, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}
