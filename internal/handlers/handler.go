package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/config"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/logging"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/models"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/queue"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/services"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/store"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger *logging.Logger
	// Services
	forecastService *services.ForecastService
	productService  *services.ProductService
	salesService    *services.SalesService
}

// New creates a new handler instance
func New(logger *logging.Logger, st store.Store, publisher queue.Publisher,
	forecastCfg config.ForecastConfig,
) *Handler {
	return &Handler{
		logger:          logger,
		forecastService: services.NewForecastService(logger, st, forecastCfg),
		productService:  services.NewProductService(logger, st),
		salesService:    services.NewSalesService(logger, publisher),
	}
}

// serviceErrorResponse converts a service layer failure into the JSON error
// envelope with the matching HTTP status. Errors that are not ServiceError
// fall back to 500 with the given code.
func serviceErrorResponse(c *fiber.Ctx, err error, fallbackCode string) error {
	if svcErr, ok := err.(*services.ServiceError); ok {
		status := fiber.StatusInternalServerError
		switch svcErr.Code {
		case "PRODUCT_NOT_FOUND":
			status = fiber.StatusNotFound
		case "INVALID_REQUEST":
			status = fiber.StatusBadRequest
		case "INSUFFICIENT_HISTORY":
			status = fiber.StatusUnprocessableEntity
		case "QUEUE_UNAVAILABLE":
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Details: svcErr.Details,
			},
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    fallbackCode,
			Message: err.Error(),
		},
	})
}
