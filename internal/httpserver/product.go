package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return badRequest(l, "get_product_failed", "productId is not a uuid", err)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "get_product_failed", err)
	}
	return ok(c, http.StatusOK, "", product)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	if c.QueryParam("page") == "" && c.QueryParam("size") == "" {
		total, items, err := h.Svc.ListProducts(ctx, 0, 0)
		if err != nil {
			return fail(l, "get_products_failed", err)
		}
		l.Info("get_products_success", "total", total)
		return ok(c, http.StatusOK, "", pageOf(items, 1, 0, len(items), total))
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListProducts(ctx, offset, limit)
	if err != nil {
		return fail(l, "get_products_failed", err)
	}

	l.Info("get_products_success", "total", total)
	return ok(c, http.StatusOK, "", pageOf(items, page, offset, limit, total))
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return fail(l, "search_products_failed", err)
	}
	return ok(c, http.StatusOK, "", pageOf(items, page, offset, limit, total))
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_product_failed", "invalid body", err)
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return fail(l, "create_product_failed", err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return ok(c, http.StatusCreated, "product created", product)
}

func pageOf(items []models.Product, page, offset, limit int, total int64) transport.ProductPage {
	if page < 1 {
		page = 1
	}
	return transport.ProductPage{
		Items: items,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: util.TotalPages(total, limit),
			HasPrev:    page > 1,
			HasNext:    int64(offset+limit) < total,
		},
	}
}
