package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"crmapi/internal/service"
)

// ListCustomers returns a filtered page of customers.
//
// @Summary List customers
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive substring of name or email"
// @Param country_id query int false "Customers with an address in this country"
// @Param state_id query int false "Customers with an address in this state"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} service.CustomerListResult
// @Failure 400 {object} errorPayload
// @Router /api/customers [get]
func ListCustomers(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := service.CustomerQuery{Search: strings.TrimSpace(c.Query("search"))}

		var ok bool
		var err error
		if q.CountryID, ok, err = optionalID(c, "country_id"); !ok {
			return err
		}
		if q.StateID, ok, err = optionalID(c, "state_id"); !ok {
			return err
		}
		if q.Limit, ok, err = intQuery(c, "limit", 10); !ok {
			return err
		}
		if q.Offset, ok, err = intQuery(c, "offset", 0); !ok {
			return err
		}

		res, err := svc.List(c.UserContext(), q)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateCustomer stores a customer with its nested addresses.
//
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CustomerInput true "Customer"
// @Success 201 {object} model.Customer
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/customers [post]
func CreateCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CustomerInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		cust, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cust)
	}
}

// GetCustomer returns one customer with its addresses.
//
// @Summary Get customer
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} model.Customer
// @Failure 404 {object} errorPayload
// @Router /api/customers/{id} [get]
func GetCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		cust, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cust)
	}
}

// UpdateCustomer overwrites a customer and replaces its address set.
//
// @Summary Update customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param body body service.CustomerInput true "Customer"
// @Success 200 {object} model.Customer
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/customers/{id} [put]
func UpdateCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		var in service.CustomerInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		cust, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cust)
	}
}

// DeleteCustomer removes a customer and its addresses.
//
// @Summary Delete customer
// @Tags customers
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/customers/{id} [delete]
func DeleteCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CustomerDashboard returns the customer totals.
//
// @Summary Customer dashboard
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DashboardStats
// @Router /api/customers/dashboard [get]
func CustomerDashboard(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Dashboard(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(stats)
	}
}
