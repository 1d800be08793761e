package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

func TestStatusOf(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found hides id", fmt.Errorf("product not found: id %s: %w", id, service.ErrNotFound), http.StatusNotFound, "product not found"},
		{"stock detail trimmed", fmt.Errorf("insufficient stock: requested 10, 5 available: %w", service.ErrInsufficientStock), http.StatusBadRequest, "insufficient stock"},
		{"validation", fmt.Errorf("name is required: %w", service.ErrValidation), http.StatusBadRequest, "name is required"},
		{"forbidden", fmt.Errorf("role %q may not access this resource: %w", "customer", service.ErrForbidden), http.StatusForbidden, `role "customer" may not access this resource`},
		{"conflict", fmt.Errorf("cart changed concurrently, reload and retry: %w", service.ErrConflict), http.StatusConflict, "cart changed concurrently, reload and retry"},
		{"expired token", fmt.Errorf("verify: %w", tokens.ErrTokenExpired), http.StatusUnauthorized, "token expired"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "nope"},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := StatusOf(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, msg)
			assert.NotContains(t, msg, id.String())
		})
	}
}
