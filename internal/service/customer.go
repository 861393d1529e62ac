package service

import (
	"context"
	"strings"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// AddressInput is a nested address of a customer write.
type AddressInput struct {
	Street  string  `json:"street" validate:"required,max=255"`
	CityID  int64   `json:"city_id" validate:"required,gt=0"`
	ZipCode *string `json:"zip_code" validate:"omitempty,max=20"`
}

// CustomerInput is the full write representation of a customer. Addresses replace the stored set.
type CustomerInput struct {
	Name      string         `json:"name" validate:"required,max=255"`
	Email     string         `json:"email" validate:"required,email,max=254"`
	Phone     *string        `json:"phone" validate:"omitempty,max=20"`
	Addresses []AddressInput `json:"addresses" validate:"dive"`
}

func (in *CustomerInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = trimmed(in.Phone)
	for i := range in.Addresses {
		in.Addresses[i].Street = strings.TrimSpace(in.Addresses[i].Street)
		in.Addresses[i].ZipCode = trimmed(in.Addresses[i].ZipCode)
	}
}

func (in *CustomerInput) records() []repository.AddressRecord {
	out := make([]repository.AddressRecord, len(in.Addresses))
	for i, a := range in.Addresses {
		out[i] = repository.AddressRecord{Street: a.Street, CityID: a.CityID, ZipCode: a.ZipCode}
	}
	return out
}

// CustomerQuery filters and pages customer listings.
type CustomerQuery struct {
	Search    string
	CountryID *int64
	StateID   *int64
	Limit     int
	Offset    int
}

func (q CustomerQuery) filter() repository.CustomerFilter {
	return repository.CustomerFilter{Search: q.Search, CountryID: q.CountryID, StateID: q.StateID}
}

// CustomerListResult is the service-level DTO for paginated customers.
type CustomerListResult struct {
	Items []model.Customer `json:"data"`
	Total int              `json:"total"`
}

// CustomerService defines the customer use cases.
type CustomerService interface {
	// List returns a page of customers matching q (newest first) and the total match count.
	List(ctx context.Context, q CustomerQuery) (*CustomerListResult, error)

	Get(ctx context.Context, id int64) (*model.Customer, error)

	// Create stores the customer together with its nested addresses.
	Create(ctx context.Context, in CustomerInput) (*model.Customer, error)

	// Update overwrites the customer and replaces every address with in.Addresses.
	Update(ctx context.Context, id int64, in CustomerInput) (*model.Customer, error)

	// Delete removes the customer and its addresses.
	Delete(ctx context.Context, id int64) error

	// Dashboard returns the total customer count and the distinct customer count per country.
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

// NewCustomerService constructs a new CustomerService.
func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) List(ctx context.Context, q CustomerQuery) (*CustomerListResult, error) {
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	res, err := s.repo.List(ctx, q.filter(), repository.PageQuery{Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		return nil, err
	}
	return &CustomerListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *customerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return c, nil
}

func (s *customerService) Create(ctx context.Context, in CustomerInput) (*model.Customer, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, &model.Customer{Name: in.Name, Email: in.Email, Phone: in.Phone}, in.records())
	if err != nil {
		return nil, mapRepoError(err)
	}
	return c, nil
}

func (s *customerService) Update(ctx context.Context, id int64, in CustomerInput) (*model.Customer, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	c, err := s.repo.Update(ctx, &model.Customer{ID: id, Name: in.Name, Email: in.Email, Phone: in.Phone}, in.records())
	if err != nil {
		return nil, mapRepoError(err)
	}
	return c, nil
}

func (s *customerService) Delete(ctx context.Context, id int64) error {
	return mapRepoError(s.repo.Delete(ctx, id))
}

func (s *customerService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	return s.repo.Stats(ctx)
}
