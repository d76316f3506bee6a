package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/forecast"
)

// dateLayout is the canonical on-disk date format. Rows loaded by earlier
// tooling may carry a trailing time component, so reads also accept that.
const dateLayout = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS sales (
	product_id TEXT NOT NULL,
	date       TEXT NOT NULL,
	sales      REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_product_date ON sales (product_id, date);
`

// SQLiteStore persists sales rows in a single SQLite database file
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at path, creating the schema if needed
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite permits a single writer; one connection avoids SQLITE_BUSY
	// under concurrent ingest
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize sales schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SalesHistory returns the product's sales summed per day, oldest first
func (s *SQLiteStore) SalesHistory(ctx context.Context, productID string) (forecast.Series, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, SUM(sales)
		FROM sales
		WHERE product_id = ?
		GROUP BY date
		ORDER BY date ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales history for %s: %w", productID, err)
	}
	defer func() { _ = rows.Close() }()

	var series forecast.Series
	for rows.Next() {
		var dateText string
		var total float64
		if err := rows.Scan(&dateText, &total); err != nil {
			return nil, fmt.Errorf("failed to scan sales row: %w", err)
		}

		day, err := parseStoredDate(dateText)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q for product %s: %w", dateText, productID, err)
		}

		series = append(series, forecast.Point{Time: day, Value: total})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sales history: %w", err)
	}

	return series, nil
}

// RecordSales inserts the records in a single transaction
func (s *SQLiteStore) RecordSales(ctx context.Context, records []SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin sales transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO sales (product_id, date, sales) VALUES (?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare sales insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx, rec.ProductID, rec.Date.UTC().Format(dateLayout), rec.Sales)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert sales row for %s: %w", rec.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sales batch: %w", err)
	}

	return nil
}

// Products lists products ordered by most recent sale date
func (s *SQLiteStore) Products(ctx context.Context) ([]ProductActivity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, MAX(date) AS last_sale_date
		FROM sales
		GROUP BY product_id
		ORDER BY last_sale_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []ProductActivity
	for rows.Next() {
		var productID, dateText string
		if err := rows.Scan(&productID, &dateText); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}

		lastSale, err := parseStoredDate(dateText)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q for product %s: %w", dateText, productID, err)
		}

		products = append(products, ProductActivity{
			ProductID:    productID,
			LastSaleDate: lastSale,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	return products, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// parseStoredDate parses a stored date string, tolerating the layouts
// produced by the load paths over time
func parseStoredDate(text string) (time.Time, error) {
	layouts := []string{
		dateLayout,
		"2006-01-02 15:04:05",
		time.RFC3339,
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format")
}
