package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/ingest"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/logging"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/models"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/store"
)

// waitForHistory polls the store until the product has n points or the
// deadline passes
func waitForHistory(t *testing.T, st store.Store, productID string, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		series, err := st.SalesHistory(context.Background(), productID)
		if err == nil && series.Len() >= n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %d points for product %q", n, productID)
}

func TestHandler_RecordSales(t *testing.T) {
	app, st, q := newTestApp(t)

	consumer := ingest.NewConsumer(logging.NewDevelopment(), q, st)
	if err := consumer.Start(); err != nil {
		t.Fatalf("Failed to start consumer: %v", err)
	}
	t.Cleanup(func() { _ = consumer.Stop() })

	reqBody := `{"date":"2026-02-01","sales":42.5}`
	body, status := doRequest(t, app, "POST", "/v1/products/sku-1/sales", strings.NewReader(reqBody))
	if status != fiber.StatusAccepted {
		t.Fatalf("Expected status 202, got %d: %s", status, string(body))
	}

	var result models.SalesWriteResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if result.Status != "accepted" {
		t.Errorf("Expected status 'accepted', got %q", result.Status)
	}
	if result.ProductID != "sku-1" {
		t.Errorf("Expected product_id 'sku-1', got %q", result.ProductID)
	}
	if result.Accepted != 1 {
		t.Errorf("Expected 1 accepted point, got %d", result.Accepted)
	}

	waitForHistory(t, st, "sku-1", 1)

	series, err := st.SalesHistory(context.Background(), "sku-1")
	if err != nil {
		t.Fatalf("Failed to read back history: %v", err)
	}
	if series[0].Value != 42.5 {
		t.Errorf("Expected persisted value 42.5, got %v", series[0].Value)
	}
}

func TestHandler_RecordSales_Batch(t *testing.T) {
	app, st, q := newTestApp(t)

	consumer := ingest.NewConsumer(logging.NewDevelopment(), q, st)
	if err := consumer.Start(); err != nil {
		t.Fatalf("Failed to start consumer: %v", err)
	}
	t.Cleanup(func() { _ = consumer.Stop() })

	reqBody := `{"points":[
		{"date":"2026-02-01","sales":10},
		{"date":"2026-02-02","sales":11},
		{"date":"2026-02-03","sales":12}
	]}`
	body, status := doRequest(t, app, "POST", "/v1/products/sku-batch/sales", strings.NewReader(reqBody))
	if status != fiber.StatusAccepted {
		t.Fatalf("Expected status 202, got %d: %s", status, string(body))
	}

	var result models.SalesWriteResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if result.Accepted != 3 {
		t.Errorf("Expected 3 accepted points, got %d", result.Accepted)
	}

	waitForHistory(t, st, "sku-batch", 3)
}

func TestHandler_RecordSales_Invalid(t *testing.T) {
	app, _, _ := newTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"negative sales", `{"date":"2026-02-01","sales":-5}`},
		{"bad date", `{"date":"02/01/2026","sales":5}`},
		{"date without sales", `{"date":"2026-02-01"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, status := doRequest(t, app, "POST", "/v1/products/sku-1/sales", strings.NewReader(tt.body))
			if status != fiber.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d: %s", status, string(body))
			}

			var errResp models.ErrorResponse
			if err := json.Unmarshal(body, &errResp); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if errResp.Error.Code != "INVALID_REQUEST" {
				t.Errorf("Expected code 'INVALID_REQUEST', got %q", errResp.Error.Code)
			}
		})
	}
}
