package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/ingest"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/models"
)

// uploadedProductID labels forecasts for ad hoc CSV uploads, which never
// touch the store
const uploadedProductID = "uploaded-csv"

// ForecastUpload forecasts a user-supplied CSV without persisting it
// POST /v1/forecast/upload
//
// Multipart form: a "file" part with date,sales columns, plus the same
// tuning fields the product forecast endpoints accept.
func (h *Handler) ForecastUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "A CSV file is required in the 'file' form field",
			},
		})
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_FILE",
				Message: "Only .csv files are accepted",
			},
		})
	}

	opts, err := forecastOptions(func(name string) string {
		return c.FormValue(name)
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file",
			"error", err, "filename", fileHeader.Filename)
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_FILE",
				Message: "Failed to open uploaded file",
			},
		})
	}
	defer func() { _ = file.Close() }()

	series, err := ingest.ReadSeriesCSV(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_FILE",
				Message: err.Error(),
			},
		})
	}

	h.logger.Debug("Uploaded CSV parsed",
		"filename", fileHeader.Filename, "points", series.Len())

	result, err := h.forecastService.ForSeries(uploadedProductID, series, opts)
	if err != nil {
		return serviceErrorResponse(c, err, "FORECAST_FAILED")
	}
	return c.JSON(result)
}
