package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/forecast"
)

// MemoryStore keeps sales rows in memory
// This is useful for testing and development without a database file
type MemoryStore struct {
	mu      sync.RWMutex
	records []SalesRecord
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SalesHistory sums the product's rows per UTC day, oldest first
func (s *MemoryStore) SalesHistory(ctx context.Context, productID string) (forecast.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[time.Time]float64)
	for _, rec := range s.records {
		if rec.ProductID != productID {
			continue
		}
		day := rec.Date.UTC().Truncate(24 * time.Hour)
		totals[day] += rec.Sales
	}

	series := make(forecast.Series, 0, len(totals))
	for day, total := range totals {
		series = append(series, forecast.Point{Time: day, Value: total})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Time.Before(series[j].Time)
	})

	if len(series) == 0 {
		return nil, nil
	}
	return series, nil
}

// RecordSales appends the records
func (s *MemoryStore) RecordSales(ctx context.Context, records []SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		rec.Date = rec.Date.UTC()
		s.records = append(s.records, rec)
	}

	return nil
}

// Products lists products ordered by most recent sale date, with product ID
// as a tie-breaker for deterministic output
func (s *MemoryStore) Products(ctx context.Context) ([]ProductActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := make(map[string]time.Time)
	for _, rec := range s.records {
		day := rec.Date.UTC().Truncate(24 * time.Hour)
		if day.After(latest[rec.ProductID]) {
			latest[rec.ProductID] = day
		}
	}

	products := make([]ProductActivity, 0, len(latest))
	for id, day := range latest {
		products = append(products, ProductActivity{ProductID: id, LastSaleDate: day})
	}

	sort.Slice(products, func(i, j int) bool {
		if !products[i].LastSaleDate.Equal(products[j].LastSaleDate) {
			return products[i].LastSaleDate.After(products[j].LastSaleDate)
		}
		return products[i].ProductID < products[j].ProductID
	})

	return products, nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
