package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/logging"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/models"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/queue"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/store"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/utils"
)

// SalesSubject is the queue subject sales batches are published on. Handlers
// publish to it; the consumer subscribes to it.
const SalesSubject = "sales.observations"

// Consumer drains sales batches from the queue into the store. Writing
// through a Store wrapped in a SeriesCache keeps cached series invalidated.
type Consumer struct {
	logger     *logging.Logger
	subscriber queue.Subscriber
	store      store.Store
}

// NewConsumer creates a new ingest consumer.
func NewConsumer(logger *logging.Logger, subscriber queue.Subscriber, st store.Store) *Consumer {
	return &Consumer{
		logger:     logger,
		subscriber: subscriber,
		store:      st,
	}
}

// Start subscribes to the sales subject.
func (c *Consumer) Start() error {
	if err := c.subscriber.Subscribe(SalesSubject, c.handleBatch); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", SalesSubject, err)
	}
	c.logger.Info("Ingest consumer subscribed", "subject", SalesSubject)
	return nil
}

// Stop unsubscribes from the sales subject.
func (c *Consumer) Stop() error {
	return c.subscriber.Unsubscribe(SalesSubject)
}

// handleBatch decodes and persists one sales batch. Returning an error leaves
// the message unacknowledged so the queue redelivers it.
func (c *Consumer) handleBatch(data []byte) error {
	var batch models.SalesBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		c.logger.Error("Failed to parse sales batch",
			"error", err,
			"data_preview", string(data[:min(200, len(data))]))
		return err
	}

	records, err := RecordsFromBatch(batch)
	if err != nil {
		c.logger.Error("Rejected malformed sales batch",
			"error", err,
			"product_id", batch.ProductID,
			"points", len(batch.Points))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.BatchWriteTimeout)
	defer cancel()

	if err := c.store.RecordSales(ctx, records); err != nil {
		c.logger.Error("Failed to persist sales batch",
			"error", err,
			"product_id", batch.ProductID,
			"points", len(records))
		return err
	}

	c.logger.Debug("Sales batch persisted",
		"product_id", batch.ProductID,
		"points", len(records))
	return nil
}

// RecordsFromBatch converts a queue message into store records, validating
// every point.
func RecordsFromBatch(batch models.SalesBatch) ([]store.SalesRecord, error) {
	if batch.ProductID == "" {
		return nil, fmt.Errorf("sales batch has no product_id")
	}
	if len(batch.Points) == 0 {
		return nil, fmt.Errorf("sales batch for %s has no points", batch.ProductID)
	}

	records := make([]store.SalesRecord, 0, len(batch.Points))
	for _, p := range batch.Points {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		t, _ := models.ParseDate(p.Date)
		records = append(records, store.SalesRecord{
			ProductID: batch.ProductID,
			Date:      t,
			Sales:     p.Sales,
		})
	}
	return records, nil
}
