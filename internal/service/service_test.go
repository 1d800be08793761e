package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/db/dbtest"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

type recordedEvent struct {
	Topic string
	Key   string
	Event Event
}

type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recorder) PublishEvent(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, _ := event.(Event)
	r.events = append(r.events, recordedEvent{Topic: topic, Key: key, Event: ev})
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Event.Type)
	}
	return out
}

type fixture struct {
	repo     *repo.GormRepo
	events   *recorder
	tokens   *tokens.Service
	auth     *AuthService
	catalog  *CatalogService
	cart     *CartService
	wishlist *WishlistService
	billing  *BillingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	r := repo.New(dbtest.New(t))
	ev := &recorder{}
	tk, err := tokens.New([]byte("service-test-secret"), time.Hour)
	require.NoError(t, err)

	return &fixture{
		repo:     r,
		events:   ev,
		tokens:   tk,
		auth:     &AuthService{Repo: r, Tokens: tk, Events: ev},
		catalog:  &CatalogService{Repo: r, Events: ev},
		cart:     &CartService{Repo: r, Events: ev},
		wishlist: &WishlistService{Repo: r, Events: ev},
		billing:  &BillingService{Repo: r, Events: ev},
	}
}

func (f *fixture) product(t *testing.T, name string, stock int, price string) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:            name,
		Quantity:        stock,
		Price:           decimal.RequireFromString(price),
		ManufactureDate: time.Now().AddDate(0, -1, 0),
		ExpiryDate:      time.Now().AddDate(0, 6, 0),
	}
	require.NoError(t, f.repo.CreateProduct(context.Background(), p))
	return p
}

func (f *fixture) customer(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", PasswordHash: "x", Role: models.RoleCustomer}
	require.NoError(t, f.repo.CreateUser(context.Background(), u))
	return u
}

func intPtr(v int) *int { return &v }
