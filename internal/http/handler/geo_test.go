package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crmapi/internal/model"
	"crmapi/internal/service"
	serviceMocks "crmapi/internal/service/mocks"
)

func TestCountryHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockGeoService)
	app := fiber.New()
	app.Get("/countries", ListCountries(mockSvc))
	app.Post("/countries", CreateCountry(mockSvc))
	app.Put("/countries/:id", UpdateCountry(mockSvc))
	app.Delete("/countries/:id", DeleteCountry(mockSvc))

	t.Run("list", func(t *testing.T) {
		mockSvc.On("ListCountries", mock.Anything).Return([]model.Country{{ID: 1, Name: "United States", Code: "USA"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/countries", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got []model.Country
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "USA", got[0].Code)
	})

	t.Run("create", func(t *testing.T) {
		in := service.CountryInput{Name: "Canada", Code: "can"}
		mockSvc.On("CreateCountry", mock.Anything, in).Return(&model.Country{ID: 3, Name: "Canada", Code: "CAN"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/countries", in))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("update duplicate code", func(t *testing.T) {
		in := service.CountryInput{Name: "Canada", Code: "USA"}
		mockSvc.On("UpdateCountry", mock.Anything, int64(3), in).Return(nil, service.ErrConflict).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/countries/3", in))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", decodeError(t, resp).Error.Code)
	})

	t.Run("delete protected", func(t *testing.T) {
		mockSvc.On("DeleteCountry", mock.Anything, int64(1)).Return(service.ErrProtected).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/countries/1", nil))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "RESOURCE_PROTECTED", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestStateHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockGeoService)
	app := fiber.New()
	app.Get("/states", ListStates(mockSvc))
	app.Get("/states/by_country", StatesByCountry(mockSvc))
	app.Get("/states/:id", GetState(mockSvc))
	app.Post("/states", CreateState(mockSvc))

	t.Run("list all", func(t *testing.T) {
		mockSvc.On("ListStates", mock.Anything, (*int64)(nil)).Return([]model.State{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/states", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("by_country requires country_id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/states/by_country", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "MISSING_PARAMETER", decodeError(t, resp).Error.Code)
	})

	t.Run("by_country rejects malformed id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/states/by_country?country_id=us", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_COUNTRY_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("get missing", func(t *testing.T) {
		mockSvc.On("GetState", mock.Anything, int64(40)).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/states/40", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("create with unknown country", func(t *testing.T) {
		in := service.StateInput{Name: "Ontario", CountryID: 99}
		mockSvc.On("CreateState", mock.Anything, in).Return(nil, service.ErrInvalidReference).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/states", in))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_REFERENCE", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestCityHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockGeoService)
	app := fiber.New()
	app.Get("/cities/by_state", CitiesByState(mockSvc))
	app.Put("/cities/:id", UpdateCity(mockSvc))
	app.Delete("/cities/:id", DeleteCity(mockSvc))

	t.Run("by_state", func(t *testing.T) {
		stateID := int64(3)
		mockSvc.On("ListCities", mock.Anything, &stateID).Return([]model.City{{ID: 7, Name: "Los Angeles"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/cities/by_state?state_id=3", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("by_state requires state_id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/cities/by_state", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "MISSING_PARAMETER", decodeError(t, resp).Error.Code)
	})

	t.Run("update", func(t *testing.T) {
		in := service.CityInput{Name: "Austin", StateID: 5}
		mockSvc.On("UpdateCity", mock.Anything, int64(8), in).Return(&model.City{ID: 8, Name: "Austin"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/cities/8", in))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("delete referenced", func(t *testing.T) {
		mockSvc.On("DeleteCity", mock.Anything, int64(7)).Return(service.ErrProtected).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/cities/7", nil))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestAddressHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockAddressService)
	app := fiber.New()
	app.Get("/addresses", ListAddresses(mockSvc))
	app.Post("/addresses", CreateAddress(mockSvc))
	app.Get("/addresses/:id", GetAddress(mockSvc))
	app.Put("/addresses/:id", UpdateAddress(mockSvc))
	app.Delete("/addresses/:id", DeleteAddress(mockSvc))

	in := service.AddressWriteInput{CustomerID: 1, Street: "1 Main St", CityID: 7}

	t.Run("list by customer", func(t *testing.T) {
		customerID := int64(1)
		mockSvc.On("List", mock.Anything, &customerID).Return([]model.Address{{ID: 11}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/addresses?customer_id=1", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("create", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, in).Return(&model.Address{ID: 11, CustomerID: 1, Street: "1 Main St"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/addresses", in))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("get", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(11)).Return(&model.Address{ID: 11}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/addresses/11", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("update missing", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, int64(12), in).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/addresses/12", in))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(11)).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/addresses/11", nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}
