package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist_Flow(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "wendy", "customer")
	pid := s.createProduct(t, "Umbrella", 0, "20.00")

	code, env := s.do(t, http.MethodPost, "/wishlist", token, map[string]string{"productId": pid})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = s.do(t, http.MethodPost, "/wishlist", token, map[string]string{"productId": pid})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "already")

	code, env = s.do(t, http.MethodGet, "/wishlist", token, nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}](t, env.Data)
	require.Len(t, list.Items, 1)

	code, env = s.do(t, http.MethodDelete, "/wishlist/"+list.Items[0].ID, token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"items":[]`)
}
