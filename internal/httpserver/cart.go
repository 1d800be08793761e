package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	view, err := h.Svc.Get(ctx, authmw.CurrentUser(c).ID)
	if err != nil {
		return fail(l, "get_cart_failed", err)
	}
	return ok(c, http.StatusOK, "", view)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_cart_failed", "invalid body", err)
	}
	if req.ProductID == "" {
		return badRequest(l, "add_to_cart_failed", "productId is required", nil)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return badRequest(l, "add_to_cart_failed", "productId is not a uuid", err)
	}

	view, err := h.Svc.Add(ctx, authmw.CurrentUser(c).ID, productID, req.Quantity)
	if err != nil {
		return fail(l, "add_to_cart_failed", err)
	}

	l.Info("add_to_cart_success", "product_id", productID)
	return ok(c, http.StatusOK, "item added to cart", view)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return badRequest(l, "update_cart_item_failed", "itemId is not a uuid", err)
	}
	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_cart_item_failed", "invalid body", err)
	}

	view, err := h.Svc.UpdateItem(ctx, authmw.CurrentUser(c).ID, itemID, req.Quantity)
	if err != nil {
		return fail(l, "update_cart_item_failed", err)
	}
	return ok(c, http.StatusOK, "cart item updated", view)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return badRequest(l, "remove_cart_item_failed", "itemId is not a uuid", err)
	}

	view, err := h.Svc.RemoveItem(ctx, authmw.CurrentUser(c).ID, itemID)
	if err != nil {
		return fail(l, "remove_cart_item_failed", err)
	}
	return ok(c, http.StatusOK, "item removed from cart", view)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	view, err := h.Svc.Clear(ctx, authmw.CurrentUser(c).ID)
	if err != nil {
		return fail(l, "clear_cart_failed", err)
	}
	return ok(c, http.StatusOK, "cart cleared", view)
}

func (h *CartHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	rec, err := h.Svc.Checkout(ctx, authmw.CurrentUser(c).ID)
	if err != nil {
		return fail(l, "checkout_failed", err)
	}
	return ok(c, http.StatusCreated, "order placed", rec)
}
