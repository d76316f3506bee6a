package models

// SalesBatch is the message published to the ingest queue: one product's
// validated sales points, persisted as a unit by the consumer.
type SalesBatch struct {
	ProductID string       `json:"product_id"`
	Points    []SalesPoint `json:"points"`
}
