package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/service"
)

// ListAddresses returns addresses, optionally narrowed by customer_id.
//
// @Summary List addresses
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Param customer_id query int false "Customer filter"
// @Success 200 {array} model.Address
// @Router /api/addresses [get]
func ListAddresses(svc service.AddressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		customerID, ok, err := optionalID(c, "customer_id")
		if !ok {
			return err
		}
		items, err := svc.List(c.UserContext(), customerID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// GetAddress returns one address.
//
// @Summary Get address
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Address ID"
// @Success 200 {object} model.Address
// @Failure 404 {object} errorPayload
// @Router /api/addresses/{id} [get]
func GetAddress(svc service.AddressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		item, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// CreateAddress attaches an address to an existing customer.
//
// @Summary Create address
// @Tags addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AddressWriteInput true "Address"
// @Success 201 {object} model.Address
// @Failure 400 {object} errorPayload
// @Router /api/addresses [post]
func CreateAddress(svc service.AddressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.AddressWriteInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		item, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// UpdateAddress overwrites an address.
//
// @Summary Update address
// @Tags addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Address ID"
// @Param body body service.AddressWriteInput true "Address"
// @Success 200 {object} model.Address
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/addresses/{id} [put]
func UpdateAddress(svc service.AddressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		var in service.AddressWriteInput
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
		item, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// DeleteAddress removes an address.
//
// @Summary Delete address
// @Tags addresses
// @Security BearerAuth
// @Param id path int true "Address ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/addresses/{id} [delete]
func DeleteAddress(svc service.AddressService) fiber.Handler {
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
