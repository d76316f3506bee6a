package services

import (
	"context"
	"encoding/json"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/ingest"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/logging"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/models"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/queue"
)

// SalesService publishes validated sales writes to the ingest queue. The
// ingest consumer persists them, so the HTTP path never blocks on the store.
type SalesService struct {
	logger    *logging.Logger
	publisher queue.Publisher
}

// NewSalesService creates a new SalesService
func NewSalesService(logger *logging.Logger, publisher queue.Publisher) *SalesService {
	return &SalesService{
		logger:    logger,
		publisher: publisher,
	}
}

// Record validates a sales write request and queues it for ingestion.
func (s *SalesService) Record(ctx context.Context, productID string, req *models.SalesWriteRequest) (*models.SalesWriteResponse, error) {
	if productID == "" {
		return nil, NewServiceError("INVALID_REQUEST", "product_id is required")
	}

	points, err := req.Normalize()
	if err != nil {
		return nil, NewServiceError("INVALID_REQUEST", err.Error())
	}

	batch := models.SalesBatch{
		ProductID: productID,
		Points:    points,
	}
	data, err := json.Marshal(batch)
	if err != nil {
		return nil, NewServiceError("INTERNAL_ERROR", "failed to serialize sales batch")
	}

	if err := s.publisher.Publish(ctx, ingest.SalesSubject, data); err != nil {
		s.logger.Error("Failed to publish sales batch",
			"error", err,
			"subject", ingest.SalesSubject,
			"product_id", productID,
			"points", len(points))
		return nil, NewServiceError("QUEUE_UNAVAILABLE", "failed to queue sales write")
	}

	s.logger.Debug("Sales batch queued",
		"subject", ingest.SalesSubject,
		"product_id", productID,
		"points", len(points))

	return &models.SalesWriteResponse{
		Status:    "accepted",
		ProductID: productID,
		Accepted:  len(points),
	}, nil
}
