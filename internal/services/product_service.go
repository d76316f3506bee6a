package services

import (
	"context"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/logging"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/models"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/store"
)

// ProductService lists the products known to the store
type ProductService struct {
	logger *logging.Logger
	store  store.Store
}

// NewProductService creates a new ProductService
func NewProductService(logger *logging.Logger, st store.Store) *ProductService {
	return &ProductService{
		logger: logger,
		store:  st,
	}
}

// List returns every product with its most recent sale date, most recently
// active first.
func (s *ProductService) List(ctx context.Context) (*models.ProductListResponse, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", "error", err)
		return nil, NewServiceError("STORE_ERROR", "failed to list products")
	}

	out := make([]models.ProductResponse, len(products))
	for i, p := range products {
		out[i] = models.ProductResponse{
			ProductID:    p.ProductID,
			LastSaleDate: p.LastSaleDate.Format(models.DateLayout),
		}
	}

	return &models.ProductListResponse{
		Products: out,
		Count:    len(out),
	}, nil
}
