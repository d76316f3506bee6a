package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// ListProducts lists every product that has recorded sales
// GET /v1/products
func (h *Handler) ListProducts(c *fiber.Ctx) error {
	result, err := h.productService.List(c.Context())
	if err != nil {
		return serviceErrorResponse(c, err, "PRODUCT_LIST_FAILED")
	}
	return c.JSON(result)
}
