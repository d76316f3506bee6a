package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/models"
)

// RecordSales queues sales observations for a product
// POST /v1/products/:product_id/sales
//
// Accepts either a single {date, sales} pair or a {points: [...]} batch. The
// rows are published to the ingest queue and persisted asynchronously, so a
// 202 response means accepted, not yet stored.
func (h *Handler) RecordSales(c *fiber.Ctx) error {
	productID := c.Params("product_id")

	var req models.SalesWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "Failed to parse request body: " + err.Error(),
			},
		})
	}

	result, err := h.salesService.Record(c.Context(), productID, &req)
	if err != nil {
		return serviceErrorResponse(c, err, "WRITE_FAILED")
	}

	return c.Status(fiber.StatusAccepted).JSON(result)
}
