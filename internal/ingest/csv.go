// Package ingest moves sales observations from the edges into the store:
// CSV files (HTTP uploads and the bulk loader) and sales batches arriving on
// the write queue.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/forecast"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/models"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/store"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/utils"
)

// columnIndexes locates the named columns in a CSV header, case-insensitive.
func columnIndexes(header []string, names ...string) (map[string]int, error) {
	indexes := make(map[string]int, len(names))
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(col))
		for _, name := range names {
			if col == name {
				indexes[name] = i
			}
		}
	}
	for _, name := range names {
		if _, ok := indexes[name]; !ok {
			return nil, fmt.Errorf("CSV header must contain a %q column, got %v", name, header)
		}
	}
	return indexes, nil
}

// parseSalesValue parses and validates one sales cell.
func parseSalesValue(cell string, line int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid sales value %q", line, cell)
	}
	if !utils.IsFinite(v) {
		return 0, fmt.Errorf("line %d: sales value is not a finite number", line)
	}
	if v < 0 {
		return 0, fmt.Errorf("line %d: sales value must not be negative, got %g", line, v)
	}
	return v, nil
}

// ReadSeriesCSV parses a date,sales CSV into a raw series for forecasting.
// Rows stay unaggregated; the engine buckets them by granularity.
func ReadSeriesCSV(r io.Reader) (forecast.Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols, err := columnIndexes(header, "date", "sales")
	if err != nil {
		return nil, err
	}

	var series forecast.Series
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		t, err := models.ParseDate(strings.TrimSpace(record[cols["date"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		v, err := parseSalesValue(record[cols["sales"]], line)
		if err != nil {
			return nil, err
		}

		series = append(series, forecast.Point{Time: t, Value: v})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("CSV contains no data rows")
	}
	return series, nil
}

// ReadSalesCSV streams a product_id,date,sales CSV into the flush callback in
// chunks of chunkSize rows, so arbitrarily large files never load fully into
// memory. A chunkSize of zero or less selects the default batch size.
func ReadSalesCSV(r io.Reader, chunkSize int, flush func([]store.SalesRecord) error) error {
	if chunkSize <= 0 {
		chunkSize = utils.DefaultBatchSize
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols, err := columnIndexes(header, "product_id", "date", "sales")
	if err != nil {
		return err
	}

	chunk := make([]store.SalesRecord, 0, chunkSize)
	line := 1
	rows := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		productID := strings.TrimSpace(record[cols["product_id"]])
		if productID == "" {
			return fmt.Errorf("line %d: empty product_id", line)
		}
		t, err := models.ParseDate(strings.TrimSpace(record[cols["date"]]))
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		v, err := parseSalesValue(record[cols["sales"]], line)
		if err != nil {
			return err
		}

		chunk = append(chunk, store.SalesRecord{ProductID: productID, Date: t, Sales: v})
		rows++

		if len(chunk) == chunkSize {
			if err := flush(chunk); err != nil {
				return fmt.Errorf("failed to flush chunk ending at line %d: %w", line, err)
			}
			chunk = chunk[:0]
		}
	}

	if len(chunk) > 0 {
		if err := flush(chunk); err != nil {
			return fmt.Errorf("failed to flush final chunk: %w", err)
		}
	}
	if rows == 0 {
		return fmt.Errorf("CSV contains no data rows")
	}
	return nil
}
