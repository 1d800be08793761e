package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

// ProductSearcher is the optional full-text index. es.ProductIndex implements it.
type ProductSearcher interface {
	IndexProduct(ctx context.Context, product *models.Product) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Search ProductSearcher
	Events mykafka.Publisher
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	case req.Quantity == nil:
		return nil, fmt.Errorf("quantity is required: %w", ErrValidation)
	case req.Price == nil:
		return nil, fmt.Errorf("price is required: %w", ErrValidation)
	case req.Discount == nil:
		return nil, fmt.Errorf("discount is required: %w", ErrValidation)
	case *req.Quantity < 0:
		return nil, fmt.Errorf("quantity cannot be negative: %w", ErrValidation)
	case req.Price.IsNegative():
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	case *req.Discount < 0 || *req.Discount > 100:
		return nil, fmt.Errorf("discount must be between 0 and 100: %w", ErrValidation)
	}

	expiry, err := parseDate("expiryDate", req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	manufactured, err := parseDate("manufactureDate", req.ManufactureDate)
	if err != nil {
		return nil, err
	}
	if expiry.Before(manufactured) {
		return nil, fmt.Errorf("expiryDate precedes manufactureDate: %w", ErrValidation)
	}

	product := &models.Product{
		SerialNumber:    strings.TrimSpace(req.SerialNumber),
		Name:            name,
		Description:     req.Description,
		Quantity:        *req.Quantity,
		Price:           req.Price.Round(2),
		Discount:        *req.Discount,
		ExpiryDate:      expiry,
		ManufactureDate: manufactured,
		ImageURL:        req.ImageURL,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if s.Search != nil {
		if err := s.Search.IndexProduct(ctx, product); err != nil {
			l.Warn("index_product_failed", "product_id", product.ID, "error", err)
		}
	}
	publish(ctx, s.Events, mykafka.TopicProduct, product.ID.String(), "product_created", product)

	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	total, items, err := s.Repo.ListProducts(ctx, offset, limit)
	if err != nil {
		return 0, nil, fmt.Errorf("list products: %w", err)
	}
	return total, items, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.Repo.FindProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: id %s: %w", id, ErrNotFound)
	}
	return product, nil
}

// SearchProducts prefers the search index and falls back to SQL when it is absent or failing.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fmt.Errorf("query is required: %w", ErrValidation)
	}

	if s.Search != nil {
		total, hits, err := s.Search.Search(ctx, q, offset, limit)
		if err == nil {
			return s.hydrate(ctx, total, hits)
		}
		logging.FromContext(ctx).Warn("search_index_failed", "reason", "falling back to sql", "error", err)
	}

	total, items, err := s.Repo.SearchProducts(ctx, q, offset, limit)
	if err != nil {
		return 0, nil, fmt.Errorf("search products: %w", err)
	}
	return total, items, nil
}

// hydrate swaps index snapshots for stored rows so stock and price are current.
// Index order is kept; hits whose product no longer exists are dropped.
func (s *CatalogService) hydrate(ctx context.Context, total int64, hits []models.Product) (int64, []models.Product, error) {
	ids := make([]uuid.UUID, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	stored, err := s.Repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return 0, nil, fmt.Errorf("load search hits: %w", err)
	}

	items := make([]models.Product, 0, len(hits))
	for _, id := range ids {
		if p, ok := stored[id]; ok {
			items = append(items, p)
		}
	}
	if dropped := int64(len(hits) - len(items)); dropped > 0 {
		total = max(total-dropped, int64(len(items)))
	}
	return total, items, nil
}

func parseDate(field, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("%s is required: %w", field, ErrValidation)
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s must be RFC3339 or YYYY-MM-DD: %w", field, ErrValidation)
}
