package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/models"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/services"
)

// Forecast handles GET forecast requests
// GET /v1/products/:product_id/forecast?granularity=daily&horizon=7
func (h *Handler) Forecast(c *fiber.Ctx) error {
	opts, err := forecastOptions(func(name string) string {
		return c.Query(name)
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
	}

	return h.executeForecast(c, c.Params("product_id"), opts)
}

// ForecastPost handles POST forecast requests
// POST /v1/products/:product_id/forecast
func (h *Handler) ForecastPost(c *fiber.Ctx) error {
	var body models.ForecastRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	opts := services.ForecastOptions{
		Granularity: body.Granularity,
		Horizon:     body.Horizon,
		Window:      body.Window,
		Trials:      body.Trials,
		Volatility:  body.Volatility,
		Confidence:  body.Confidence,
	}

	return h.executeForecast(c, c.Params("product_id"), opts)
}

// executeForecast runs the forecast against the product's stored history
func (h *Handler) executeForecast(c *fiber.Ctx, productID string, opts services.ForecastOptions) error {
	result, err := h.forecastService.ForProduct(c.Context(), productID, opts)
	if err != nil {
		return serviceErrorResponse(c, err, "FORECAST_FAILED")
	}
	return c.JSON(result)
}

// forecastOptions reads the tuning fields through get, which abstracts over
// query parameters and multipart form fields. Absent fields stay zero so the
// service applies its configured defaults.
func forecastOptions(get func(string) string) (services.ForecastOptions, error) {
	opts := services.ForecastOptions{Granularity: strings.TrimSpace(get("granularity"))}

	var err error
	if opts.Horizon, err = intField(get, "horizon"); err != nil {
		return opts, err
	}
	if opts.Window, err = intField(get, "window"); err != nil {
		return opts, err
	}
	if opts.Trials, err = intField(get, "trials"); err != nil {
		return opts, err
	}
	if opts.Volatility, err = floatField(get, "volatility"); err != nil {
		return opts, err
	}
	confidence, err := floatField(get, "confidence")
	if err != nil {
		return opts, err
	}
	if confidence != nil {
		opts.Confidence = *confidence
	}
	return opts, nil
}

func intField(get func(string) string, name string) (int, error) {
	raw := strings.TrimSpace(get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func floatField(get func(string) string, name string) (*float64, error) {
	raw := strings.TrimSpace(get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}
