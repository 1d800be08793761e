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

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.get")

	view, err := h.Svc.Get(ctx, authmw.CurrentUser(c).ID)
	if err != nil {
		return fail(l, "get_wishlist_failed", err)
	}
	return ok(c, http.StatusOK, "", view)
}

func (h *WishlistHTTP) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	var req transport.AddWishlistItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_wishlist_failed", "invalid body", err)
	}
	if req.ProductID == "" {
		return badRequest(l, "add_to_wishlist_failed", "productId is required", nil)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return badRequest(l, "add_to_wishlist_failed", "productId is not a uuid", err)
	}

	view, err := h.Svc.Add(ctx, authmw.CurrentUser(c).ID, productID)
	if err != nil {
		return fail(l, "add_to_wishlist_failed", err)
	}
	return ok(c, http.StatusOK, "item added to wishlist", view)
}

func (h *WishlistHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return badRequest(l, "remove_wishlist_item_failed", "itemId is not a uuid", err)
	}

	view, err := h.Svc.RemoveItem(ctx, authmw.CurrentUser(c).ID, itemID)
	if err != nil {
		return fail(l, "remove_wishlist_item_failed", err)
	}
	return ok(c, http.StatusOK, "item removed from wishlist", view)
}
