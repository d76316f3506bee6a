package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/ingest"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/store"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/utils"
)

func main() {
	// Command line flags
	dbPath := flag.String("db", "./data/sales.db", "SQLite database file")
	csvPath := flag.String("file", "", "CSV file with product_id,date,sales columns")
	chunkSize := flag.Int("chunk", utils.DefaultBatchSize, "Rows per write batch")

	flag.Parse()

	// Validate required parameters
	if *csvPath == "" {
		log.Fatal("Error: -file parameter is required")
	}

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Error opening CSV file: %v\n", err)
	}
	defer func() { _ = file.Close() }()

	salesStore, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatalf("Error opening store: %v\n", err)
	}
	defer func() { _ = salesStore.Close() }()

	fmt.Printf("Loading %s into %s (chunks of %d)\n", *csvPath, *dbPath, *chunkSize)

	start := time.Now()
	total := 0
	batches := 0

	err = ingest.ReadSalesCSV(file, *chunkSize, func(records []store.SalesRecord) error {
		ctx, cancel := context.WithTimeout(context.Background(), utils.BatchWriteTimeout)
		defer cancel()

		if err := salesStore.RecordSales(ctx, records); err != nil {
			return err
		}
		total += len(records)
		batches++
		fmt.Printf("  wrote batch %d (%d rows, %d total)\n", batches, len(records), total)
		return nil
	})
	if err != nil {
		log.Fatalf("Error loading CSV: %v\n", err)
	}

	if total == 0 {
		log.Printf("Warning: No data rows found\n")
		return
	}

	fmt.Printf("Successfully loaded %d rows in %d batches (%s)\n",
		total, batches, time.Since(start).Round(time.Millisecond))
}
