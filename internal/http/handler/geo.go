package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/service"
)

// ListCountries returns every country ordered by name.
//
// @Summary List countries
// @Tags geography
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Country
// @Router /api/countries [get]
func ListCountries(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListCountries(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// GetCountry returns one country.
//
// @Summary Get country
// @Tags geography
// @Produce json
// @Security BearerAuth
// @Param id path int true "Country ID"
// @Success 200 {object} model.Country
// @Failure 404 {object} errorPayload
// @Router /api/countries/{id} [get]
func GetCountry(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		item, err := svc.GetCountry(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// CreateCountry adds a country. Name and code are unique.
//
// @Summary Create country
// @Tags geography
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CountryInput true "Country"
// @Success 201 {object} model.Country
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/countries [post]
func CreateCountry(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CountryInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		item, err := svc.CreateCountry(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// UpdateCountry overwrites a country.
//
// @Summary Update country
// @Tags geography
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Country ID"
// @Param body body service.CountryInput true "Country"
// @Success 200 {object} model.Country
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/countries/{id} [put]
func UpdateCountry(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		var in service.CountryInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		item, err := svc.UpdateCountry(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// DeleteCountry removes a country with its states and cities unless an address points into it.
//
// @Summary Delete country
// @Tags geography
// @Security BearerAuth
// @Param id path int true "Country ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/countries/{id} [delete]
func DeleteCountry(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		if err := svc.DeleteCountry(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListStates returns states, optionally narrowed by country_id.
//
// @Summary List states
// @Tags geography
// @Produce json
// @Security BearerAuth
// @Param country_id query int false "Country filter"
// @Success 200 {array} model.State
// @Router /api/states [get]
func ListStates(svc service.GeoService) fiber.Handler {
	return listStates(svc, optionalID)
}

// StatesByCountry returns the states of the required country_id.
//
// @Summary States of a country
// @Tags geography
// @Produce json
// @Security BearerAuth
// @Param country_id query int true "Country ID"
// @Success 200 {array} model.State
// @Failure 400 {object} errorPayload
// @Router /api/states/by_country [get]
func StatesByCountry(svc service.GeoService) fiber.Handler {
	return listStates(svc, requiredID)
}

func listStates(svc service.GeoService, param func(*fiber.Ctx, string) (*int64, bool, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		countryID, ok, err := param(c, "country_id")
		if !ok {
			return err
		}
		items, err := svc.ListStates(c.UserContext(), countryID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// GetState returns one state.
//
// @Summary Get state
// @Tags geography
// @Produce json
// @Security BearerAuth
// @Param id path int true "State ID"
// @Success 200 {object} model.State
// @Failure 404 {object} errorPayload
// @Router /api/states/{id} [get]
func GetState(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		item, err := svc.GetState(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// CreateState adds a state to a country.
//
// @Summary Create state
// @Tags geography
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.StateInput true "State"
// @Success 201 {object} model.State
// @Failure 400 {object} errorPayload
// @Router /api/states [post]
func CreateState(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.StateInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		item, err := svc.CreateState(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// UpdateState overwrites a state.
//
// @Summary Update state
// @Tags geography
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "State ID"
// @Param body body service.StateInput true "State"
// @Success 200 {object} model.State
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/states/{id} [put]
func UpdateState(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		var in service.StateInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		item, err := svc.UpdateState(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// DeleteState removes a state with its cities unless an address points into it.
//
// @Summary Delete state
// @Tags geography
// @Security BearerAuth
// @Param id path int true "State ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/states/{id} [delete]
func DeleteState(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		if err := svc.DeleteState(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListCities returns cities, optionally narrowed by state_id.
//
// @Summary List cities
// @Tags geography
// @Produce json
// @Security BearerAuth
// @Param state_id query int false "State filter"
// @Success 200 {array} model.City
// @Router /api/cities [get]
func ListCities(svc service.GeoService) fiber.Handler {
	return listCities(svc, optionalID)
}

// CitiesByState returns the cities of the required state_id.
//
// @Summary Cities of a state
// @Tags geography
// @Produce json
// @Security BearerAuth
// @Param state_id query int true "State ID"
// @Success 200 {array} model.City
// @Failure 400 {object} errorPayload
// @Router /api/cities/by_state [get]
func CitiesByState(svc service.GeoService) fiber.Handler {
	return listCities(svc, requiredID)
}

func listCities(svc service.GeoService, param func(*fiber.Ctx, string) (*int64, bool, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stateID, ok, err := param(c, "state_id")
		if !ok {
			return err
		}
		items, err := svc.ListCities(c.UserContext(), stateID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// GetCity returns one city.
//
// @Summary Get city
// @Tags geography
// @Produce json
// @Security BearerAuth
// @Param id path int true "City ID"
// @Success 200 {object} model.City
// @Failure 404 {object} errorPayload
// @Router /api/cities/{id} [get]
func GetCity(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		item, err := svc.GetCity(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// CreateCity adds a city to a state.
//
// @Summary Create city
// @Tags geography
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CityInput true "City"
// @Success 201 {object} model.City
// @Failure 400 {object} errorPayload
// @Router /api/cities [post]
func CreateCity(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CityInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		item, err := svc.CreateCity(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// UpdateCity overwrites a city.
//
// @Summary Update city
// @Tags geography
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "City ID"
// @Param body body service.CityInput true "City"
// @Success 200 {object} model.City
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/cities/{id} [put]
func UpdateCity(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		var in service.CityInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		item, err := svc.UpdateCity(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// DeleteCity removes a city unless an address points at it.
//
// @Summary Delete city
// @Tags geography
// @Security BearerAuth
// @Param id path int true "City ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/cities/{id} [delete]
func DeleteCity(svc service.GeoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		if err := svc.DeleteCity(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
