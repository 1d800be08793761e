package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/db/dbtest"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

type testServer struct {
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tk, err := tokens.New([]byte("http-test-secret"), time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return &testServer{e: New(logger, NewDeps(dbtest.New(t), tk, mykafka.Nop{}, nil))}
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Token     string          `json:"token"`
	ExpiresAt string          `json:"expiresAt"`
	User      json.RawMessage `json:"user"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func (s *testServer) register(t *testing.T, username, role string) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	require.NotEmpty(t, env.Token)
	return env.Token
}

func (s *testServer) createProduct(t *testing.T, name string, quantity int, price string) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/products", "", map[string]any{
		"name":            name,
		"quantity":        quantity,
		"price":           price,
		"discount":        0,
		"manufactureDate": "2026-01-01",
		"expiryDate":      "2027-01-01",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	var p struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p.ID
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}
