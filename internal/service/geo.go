package service

import (
	"context"
	"strings"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// CountryInput is the write representation of a country.
type CountryInput struct {
	Name string `json:"name" validate:"required,max=100"`
	Code string `json:"code" validate:"required,alpha,max=3"`
}

// StateInput is the write representation of a state.
type StateInput struct {
	Name      string `json:"name" validate:"required,max=100"`
	CountryID int64  `json:"country_id" validate:"required,gt=0"`
}

// CityInput is the write representation of a city.
type CityInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	StateID int64  `json:"state_id" validate:"required,gt=0"`
}

// GeoService manages the country, state and city reference hierarchy.
// Deletes cascade downwards and fail with ErrProtected while an address points into the subtree.
type GeoService interface {
	ListCountries(ctx context.Context) ([]model.Country, error)
	GetCountry(ctx context.Context, id int64) (*model.Country, error)
	CreateCountry(ctx context.Context, in CountryInput) (*model.Country, error)
	UpdateCountry(ctx context.Context, id int64, in CountryInput) (*model.Country, error)
	DeleteCountry(ctx context.Context, id int64) error

	// ListStates returns all states, or those of one country when countryID is set.
	ListStates(ctx context.Context, countryID *int64) ([]model.State, error)
	GetState(ctx context.Context, id int64) (*model.State, error)
	CreateState(ctx context.Context, in StateInput) (*model.State, error)
	UpdateState(ctx context.Context, id int64, in StateInput) (*model.State, error)
	DeleteState(ctx context.Context, id int64) error

	// ListCities returns all cities, or those of one state when stateID is set.
	ListCities(ctx context.Context, stateID *int64) ([]model.City, error)
	GetCity(ctx context.Context, id int64) (*model.City, error)
	CreateCity(ctx context.Context, in CityInput) (*model.City, error)
	UpdateCity(ctx context.Context, id int64, in CityInput) (*model.City, error)
	DeleteCity(ctx context.Context, id int64) error

	// Seed idempotently creates the reference hierarchy in data.
	Seed(ctx context.Context, data []SeedCountry) (*SeedReport, error)
}

type geoService struct {
	repo repository.GeoRepository
}

// NewGeoService constructs a new GeoService.
func NewGeoService(repo repository.GeoRepository) GeoService {
	return &geoService{repo: repo}
}

func (s *geoService) ListCountries(ctx context.Context) ([]model.Country, error) {
	return s.repo.ListCountries(ctx)
}

func (s *geoService) GetCountry(ctx context.Context, id int64) (*model.Country, error) {
	c, err := s.repo.FindCountry(ctx, id)
	return c, mapRepoError(err)
}

func (s *geoService) CreateCountry(ctx context.Context, in CountryInput) (*model.Country, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	c, err := s.repo.CreateCountry(ctx, model.Country{Name: in.Name, Code: in.Code})
	return c, mapRepoError(err)
}

func (s *geoService) UpdateCountry(ctx context.Context, id int64, in CountryInput) (*model.Country, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	c, err := s.repo.UpdateCountry(ctx, model.Country{ID: id, Name: in.Name, Code: in.Code})
	return c, mapRepoError(err)
}

func (s *geoService) DeleteCountry(ctx context.Context, id int64) error {
	return mapRepoError(s.repo.DeleteCountry(ctx, id))
}

func (s *geoService) ListStates(ctx context.Context, countryID *int64) ([]model.State, error) {
	return s.repo.ListStates(ctx, countryID)
}

func (s *geoService) GetState(ctx context.Context, id int64) (*model.State, error) {
	st, err := s.repo.FindState(ctx, id)
	return st, mapRepoError(err)
}

func (s *geoService) CreateState(ctx context.Context, in StateInput) (*model.State, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	st, err := s.repo.CreateState(ctx, in.Name, in.CountryID)
	return st, mapRepoError(err)
}

func (s *geoService) UpdateState(ctx context.Context, id int64, in StateInput) (*model.State, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	st, err := s.repo.UpdateState(ctx, id, in.Name, in.CountryID)
	return st, mapRepoError(err)
}

func (s *geoService) DeleteState(ctx context.Context, id int64) error {
	return mapRepoError(s.repo.DeleteState(ctx, id))
}

func (s *geoService) ListCities(ctx context.Context, stateID *int64) ([]model.City, error) {
	return s.repo.ListCities(ctx, stateID)
}

func (s *geoService) GetCity(ctx context.Context, id int64) (*model.City, error) {
	c, err := s.repo.FindCity(ctx, id)
	return c, mapRepoError(err)
}

func (s *geoService) CreateCity(ctx context.Context, in CityInput) (*model.City, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	c, err := s.repo.CreateCity(ctx, in.Name, in.StateID)
	return c, mapRepoError(err)
}

func (s *geoService) UpdateCity(ctx context.Context, id int64, in CityInput) (*model.City, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	c, err := s.repo.UpdateCity(ctx, id, in.Name, in.StateID)
	return c, mapRepoError(err)
}

func (s *geoService) DeleteCity(ctx context.Context, id int64) error {
	return mapRepoError(s.repo.DeleteCity(ctx, id))
}
