package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/models"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/store"
)

func TestHandler_ListProducts(t *testing.T) {
	app, st, _ := newTestApp(t)

	records := []store.SalesRecord{
		{ProductID: "sku-old", Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), Sales: 5},
		{ProductID: "sku-new", Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Sales: 9},
	}
	if err := st.RecordSales(context.Background(), records); err != nil {
		t.Fatalf("Failed to seed sales: %v", err)
	}

	body, status := doRequest(t, app, "GET", "/v1/products", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", status, string(body))
	}

	var result models.ProductListResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if result.Count != 2 {
		t.Fatalf("Expected count 2, got %d", result.Count)
	}
	if result.Products[0].ProductID != "sku-new" {
		t.Errorf("Expected most recently active product first, got %q", result.Products[0].ProductID)
	}
	if result.Products[0].LastSaleDate != "2026-03-01" {
		t.Errorf("Expected last_sale_date '2026-03-01', got %q", result.Products[0].LastSaleDate)
	}
}

func TestHandler_ListProducts_Empty(t *testing.T) {
	app, _, _ := newTestApp(t)

	body, status := doRequest(t, app, "GET", "/v1/products", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", status, string(body))
	}

	var result models.ProductListResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if result.Count != 0 {
		t.Errorf("Expected count 0, got %d", result.Count)
	}
	if result.Products == nil {
		t.Error("Expected empty products array, got null")
	}
}
