package httpserver

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartBody struct {
	Items []struct {
		ID        string         `json:"id"`
		ProductID string         `json:"productId"`
		Quantity  int            `json:"quantity"`
		Product   map[string]any `json:"product"`
	} `json:"items"`
	Total string `json:"total"`
}

func TestCart_RequiresCustomer(t *testing.T) {
	s := newTestServer(t)
	shop := s.register(t, "shop", "shopkeeper")

	code, env := s.do(t, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, _ = s.do(t, http.MethodGet, "/cart", shop, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodGet, "/wishlist", shop, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestCart_Flow(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "cathy", "customer")
	pid := s.createProduct(t, "Pasta", 5, "1.50")

	code, env := s.do(t, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[cartBody](t, env.Data).Items)

	code, env = s.do(t, http.MethodPost, "/cart", token, map[string]any{"productId": pid, "quantity": 3})
	require.Equal(t, http.StatusOK, code, env.Message)
	cart := decode[cartBody](t, env.Data)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, "Pasta", cart.Items[0].Product["name"])
	assert.Equal(t, "4.5", cart.Total)
	itemID := cart.Items[0].ID

	code, env = s.do(t, http.MethodPut, "/cart/"+itemID, token, map[string]any{"quantity": 10})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "insufficient stock")

	code, env = s.do(t, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, decode[cartBody](t, env.Data).Items[0].Quantity)

	code, _ = s.do(t, http.MethodDelete, "/cart/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodPost, "/cart/checkout", token, nil)
	require.Equal(t, http.StatusCreated, code, env.Message)
	assert.Equal(t, "4.5", decode[map[string]any](t, env.Data)["total"])

	code, env = s.do(t, http.MethodGet, "/products/"+pid, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, decode[map[string]any](t, env.Data)["quantity"])

	code, env = s.do(t, http.MethodDelete, "/cart/clear", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[cartBody](t, env.Data).Items)
}

func TestCart_Errors(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "dina", "")

	code, _ := s.do(t, http.MethodDelete, "/cart/clear", token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env := s.do(t, http.MethodPost, "/cart", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "productId is required", env.Message)

	code, _ = s.do(t, http.MethodPost, "/cart", token, map[string]any{"productId": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodPut, "/cart/"+uuid.NewString(), token, map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodPost, "/cart/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
