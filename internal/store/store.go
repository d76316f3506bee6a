// Package store persists raw sales rows and serves them back as daily
// series ready for forecasting.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/config"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/forecast"
)

// SalesRecord is one raw sales row as ingested
type SalesRecord struct {
	ProductID string
	Date      time.Time
	Sales     float64
}

// ProductActivity summarizes a product's most recent recorded sale
type ProductActivity struct {
	ProductID    string
	LastSaleDate time.Time
}

// Store is the persistence boundary for sales data
type Store interface {
	// SalesHistory returns the product's sales summed per calendar day,
	// sorted ascending by date. A product with no rows yields an empty
	// series and no error.
	SalesHistory(ctx context.Context, productID string) (forecast.Series, error)

	// RecordSales appends raw sales rows
	RecordSales(ctx context.Context, records []SalesRecord) error

	// Products lists known products with their most recent sale date,
	// most recently active first
	Products(ctx context.Context) ([]ProductActivity, error)

	// Close releases underlying resources
	Close() error
}

// NewStore creates a Store instance based on configuration
func NewStore(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLiteStore(cfg.Path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s (supported: sqlite, memory)", cfg.Driver)
	}
}
