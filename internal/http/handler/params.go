package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// The helpers below return ok=false once they have written an error response; the caller
// returns err unchanged.

// parseID reads the positive integer :id route parameter, answering 400 INVALID_ID otherwise.
func parseID(c *fiber.Ctx) (int64, bool, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	return id, true, nil
}

// optionalID reads an optional positive integer query parameter. A malformed value answers
// 400 INVALID_<NAME>.
func optionalID(c *fiber.Ctx, name string) (*int64, bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, false, invalidParam(c, name)
	}
	return &v, true, nil
}

// requiredID is optionalID for filters that must be present; absence answers 400 MISSING_PARAMETER.
func requiredID(c *fiber.Ctx, name string) (*int64, bool, error) {
	v, ok, err := optionalID(c, name)
	if !ok {
		return nil, false, err
	}
	if v == nil {
		return nil, false, writeError(c, fiber.StatusBadRequest, "MISSING_PARAMETER", name+" is required")
	}
	return v, true, nil
}

// intQuery reads a non-negative integer query parameter with a default.
func intQuery(c *fiber.Ctx, name string, def int) (int, bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false, invalidParam(c, name)
	}
	return v, true, nil
}

func invalidParam(c *fiber.Ctx, name string) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_"+strings.ToUpper(name), "invalid "+name)
}

// parseBody decodes the JSON request body into dst, answering 400 BAD_REQUEST on malformed input.
func parseBody(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
	}
	return true, nil
}
