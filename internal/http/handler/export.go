package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"crmapi/internal/service"
)

const (
	deliveryAttachment = "attachment"
	deliveryLink       = "link"
)

// ExportCustomers renders the filtered customers as an xlsx workbook. delivery=attachment
// streams the file; delivery=link uploads it and answers with a presigned URL.
//
// @Summary Export customers
// @Tags customers
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce json
// @Security BearerAuth
// @Param mode query string false "separate (one row per address) or combined (one row per customer)"
// @Param delivery query string false "attachment (default) or link"
// @Param search query string false "Case-insensitive substring of name or email"
// @Param country_id query int false "Country filter"
// @Param state_id query int false "State filter"
// @Success 200 {object} service.ExportLink
// @Failure 400 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /api/customers/export [get]
func ExportCustomers(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := service.ExportQuery{
			Search: strings.TrimSpace(c.Query("search")),
			Mode:   strings.ToLower(strings.TrimSpace(c.Query("mode"))),
		}

		var ok bool
		var err error
		if q.CountryID, ok, err = optionalID(c, "country_id"); !ok {
			return err
		}
		if q.StateID, ok, err = optionalID(c, "state_id"); !ok {
			return err
		}

		switch strings.ToLower(c.Query("delivery", deliveryAttachment)) {
		case deliveryAttachment:
			file, err := svc.Export(c.UserContext(), q)
			if err != nil {
				return writeServiceError(c, err)
			}
			c.Set(fiber.HeaderContentType, file.ContentType)
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
			c.Set("X-Export-Rows", strconv.Itoa(file.Rows))
			return c.Send(file.Body.Bytes())
		case deliveryLink:
			link, err := svc.Publish(c.UserContext(), q)
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.JSON(link)
		default:
			return invalidParam(c, "delivery")
		}
	}
}
