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

type BillingHTTP struct {
	Svc *service.BillingService
}

func (h *BillingHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "billing.list")

	records, err := h.Svc.List(ctx, authmw.CurrentUser(c))
	if err != nil {
		return fail(l, "list_billings_failed", err)
	}
	return ok(c, http.StatusOK, "", records)
}

func (h *BillingHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "billing.create")

	var req transport.CreateBillingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_billing_failed", "invalid body", err)
	}

	var owner *uuid.UUID
	if u := authmw.CurrentUser(c); u != nil {
		owner = &u.ID
	}

	rec, err := h.Svc.Create(ctx, owner, req)
	if err != nil {
		return fail(l, "create_billing_failed", err)
	}
	return ok(c, http.StatusCreated, "billing recorded", rec)
}
