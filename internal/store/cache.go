package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/snappy"
	"github.com/redis/go-redis/v9"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/config"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/forecast"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/logging"
)

// seriesKeyPrefix namespaces cached series in a shared Redis instance
const seriesKeyPrefix = "salesforecast:series:"

// cachedPoint is the wire form of one daily total
type cachedPoint struct {
	Date  time.Time `json:"date"`
	Sales float64   `json:"sales"`
}

// SeriesCache is a read-through Redis cache in front of a Store.
// Cached entries hold a product's full daily series, snappy-compressed.
// Cache failures are logged and degrade to the inner store; they are
// never surfaced to callers.
type SeriesCache struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewSeriesCache connects to Redis and wraps inner with read-through caching
func NewSeriesCache(inner Store, cfg config.CacheConfig, logger *logging.Logger) (*SeriesCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &SeriesCache{
		inner:  inner,
		client: client,
		ttl:    cfg.TTL,
		logger: logger,
	}, nil
}

func seriesKey(productID string) string {
	return seriesKeyPrefix + productID
}

// SalesHistory returns the cached series when present, otherwise reads the
// inner store and caches the result
func (c *SeriesCache) SalesHistory(ctx context.Context, productID string) (forecast.Series, error) {
	key := seriesKey(productID)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		series, decodeErr := decodeSeries(payload)
		if decodeErr == nil {
			return series, nil
		}
		// A corrupt entry is dropped and treated as a miss
		c.logger.Warn("Dropping corrupt cached series", "product_id", productID, "error", decodeErr)
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		c.logger.Warn("Series cache read failed", "product_id", productID, "error", err)
	}

	series, err := c.inner.SalesHistory(ctx, productID)
	if err != nil {
		return nil, err
	}

	if payload, encodeErr := encodeSeries(series); encodeErr == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.logger.Warn("Series cache write failed", "product_id", productID, "error", setErr)
		}
	}

	return series, nil
}

// RecordSales writes through to the inner store and invalidates the cached
// series of every affected product
func (c *SeriesCache) RecordSales(ctx context.Context, records []SalesRecord) error {
	if err := c.inner.RecordSales(ctx, records); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, done := seen[rec.ProductID]; done {
			continue
		}
		seen[rec.ProductID] = struct{}{}

		if err := c.client.Del(ctx, seriesKey(rec.ProductID)).Err(); err != nil {
			c.logger.Warn("Series cache invalidation failed", "product_id", rec.ProductID, "error", err)
		}
	}

	return nil
}

// Products passes through to the inner store
func (c *SeriesCache) Products(ctx context.Context) ([]ProductActivity, error) {
	return c.inner.Products(ctx)
}

// Close closes the Redis client and the inner store
func (c *SeriesCache) Close() error {
	if err := c.client.Close(); err != nil {
		c.logger.Warn("Failed to close Redis client", "error", err)
	}
	return c.inner.Close()
}

// encodeSeries marshals and snappy-compresses a series
func encodeSeries(series forecast.Series) ([]byte, error) {
	points := make([]cachedPoint, len(series))
	for i, p := range series {
		points[i] = cachedPoint{Date: p.Time, Sales: p.Value}
	}

	raw, err := json.Marshal(points)
	if err != nil {
		return nil, fmt.Errorf("failed to encode series: %w", err)
	}

	return snappy.Encode(nil, raw), nil
}

// decodeSeries reverses encodeSeries
func decodeSeries(payload []byte) (forecast.Series, error) {
	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress series: %w", err)
	}

	var points []cachedPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, fmt.Errorf("failed to decode series: %w", err)
	}

	series := make(forecast.Series, len(points))
	for i, p := range points {
		series[i] = forecast.Point{Time: p.Date.UTC(), Value: p.Sales}
	}

	return series, nil
}
