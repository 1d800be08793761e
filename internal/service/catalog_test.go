package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type stubSearcher struct {
	indexed []uuid.UUID
	err     error
	hits    []models.Product
}

func (s *stubSearcher) IndexProduct(_ context.Context, p *models.Product) error {
	s.indexed = append(s.indexed, p.ID)
	return s.err
}

func (s *stubSearcher) Search(context.Context, string, int, int) (int64, []models.Product, error) {
	if s.err != nil {
		return 0, nil, s.err
	}
	return int64(len(s.hits)), s.hits, nil
}

func validProduct() transport.CreateProductRequest {
	price := decimal.RequireFromString("12.499")
	discount := 15.0
	return transport.CreateProductRequest{
		Name:            "Olive Oil",
		Description:     "cold pressed",
		Quantity:        intPtr(7),
		Price:           &price,
		Discount:        &discount,
		ManufactureDate: "2026-01-10",
		ExpiryDate:      "2027-01-10T00:00:00Z",
	}
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)
	search := &stubSearcher{}
	f.catalog.Search = search

	p, err := f.catalog.CreateProduct(context.Background(), validProduct())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.50").Equal(p.Price))
	assert.Equal(t, 7, p.Quantity)
	assert.Equal(t, []uuid.UUID{p.ID}, search.indexed)
	assert.Equal(t, []string{"product_created"}, f.events.types())

	got, err := f.catalog.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Olive Oil", got.Name)
}

func TestCreateProduct_IndexFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.catalog.Search = &stubSearcher{err: errors.New("cluster down")}

	_, err := f.catalog.CreateProduct(context.Background(), validProduct())
	require.NoError(t, err)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newFixture(t)
	neg := decimal.RequireFromString("-1")
	badDiscount := 120.0

	cases := map[string]func(r *transport.CreateProductRequest){
		"missing name":       func(r *transport.CreateProductRequest) { r.Name = " " },
		"missing quantity":   func(r *transport.CreateProductRequest) { r.Quantity = nil },
		"negative quantity":  func(r *transport.CreateProductRequest) { r.Quantity = intPtr(-1) },
		"missing price":      func(r *transport.CreateProductRequest) { r.Price = nil },
		"negative price":     func(r *transport.CreateProductRequest) { r.Price = &neg },
		"missing discount":   func(r *transport.CreateProductRequest) { r.Discount = nil },
		"discount too large": func(r *transport.CreateProductRequest) { r.Discount = &badDiscount },
		"missing expiry":     func(r *transport.CreateProductRequest) { r.ExpiryDate = "" },
		"bad date":           func(r *transport.CreateProductRequest) { r.ManufactureDate = "10/01/2026" },
		"expiry before made": func(r *transport.CreateProductRequest) { r.ExpiryDate = "2025-01-01" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validProduct()
			mutate(&req)
			_, err := f.catalog.CreateProduct(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestGetProduct_Missing(t *testing.T) {
	f := newFixture(t)

	p, err := f.catalog.GetProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, p)
}

func TestSearchProducts_ReturnsStoredRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lamp := f.product(t, "Lamp", 5, "30.00")
	desk := f.product(t, "Desk", 2, "120.00")

	staleLamp := *lamp
	staleLamp.Quantity = 99
	staleLamp.Name = "Old Lamp"
	gone := models.Product{Name: "Deleted Chair"}
	gone.ID = uuid.New()

	f.catalog.Search = &stubSearcher{hits: []models.Product{*desk, gone, staleLamp}}

	_, err := f.billing.Create(ctx, nil, transport.CreateBillingRequest{
		Items: []transport.BillingLineRequest{{ProductID: lamp.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)

	total, items, err := f.catalog.SearchProducts(ctx, "lamp", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, desk.ID, items[0].ID)
	assert.Equal(t, lamp.ID, items[1].ID)
	assert.Equal(t, "Lamp", items[1].Name)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestSearchProducts_FallsBackToSQL(t *testing.T) {
	f := newFixture(t)
	f.product(t, "Rye Bread", 3, "2.00")
	f.product(t, "Milk", 3, "1.00")

	f.catalog.Search = &stubSearcher{err: errors.New("timeout")}
	total, items, err := f.catalog.SearchProducts(context.Background(), "bread", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Rye Bread", items[0].Name)

	_, _, err = f.catalog.SearchProducts(context.Background(), "  ", 0, 10)
	assert.ErrorIs(t, err, ErrValidation)
}
