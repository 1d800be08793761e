package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events mykafka.Publisher
}

func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*transport.CartView, error) {
	cart, err := s.Repo.FindOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return s.view(ctx, cart)
}

// Add puts quantity units of a product in the cart, merging with an existing line.
// Only the requested quantity is checked against stock, not the merged total.
func (s *CartService) Add(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity *int) (*transport.CartView, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("productId is required: %w", ErrValidation)
	}
	qty := 1
	if quantity != nil {
		qty = *quantity
	}
	if qty <= 0 {
		return nil, fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}
	if qty > MaxLineQuantity {
		return nil, fmt.Errorf("quantity exceeds %d: %w", MaxLineQuantity, ErrValidation)
	}

	product, err := s.Repo.FindProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: id %s: %w", productID, ErrNotFound)
	}
	if qty > product.Quantity {
		return nil, fmt.Errorf("insufficient stock: requested %d, %d available: %w", qty, product.Quantity, ErrInsufficientStock)
	}

	cart, err := s.Repo.FindOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			if cart.Items[i].Quantity > MaxLineQuantity-qty {
				return nil, fmt.Errorf("quantity exceeds %d for the product: %w", MaxLineQuantity, ErrValidation)
			}
			cart.Items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: qty})
	}

	if err := s.save(ctx, cart, "item_added"); err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity *int) (*transport.CartView, error) {
	if quantity == nil {
		return nil, fmt.Errorf("quantity is required: %w", ErrValidation)
	}
	if *quantity <= 0 {
		return nil, fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}
	if *quantity > MaxLineQuantity {
		return nil, fmt.Errorf("quantity exceeds %d: %w", MaxLineQuantity, ErrValidation)
	}

	cart, err := s.Repo.FindOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("cart item not found: id %s: %w", itemID, ErrNotFound)
	}

	product, err := s.Repo.FindProduct(ctx, cart.Items[idx].ProductID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: id %s: %w", cart.Items[idx].ProductID, ErrNotFound)
	}
	if *quantity > product.Quantity {
		return nil, fmt.Errorf("insufficient stock: requested %d, %d available: %w", *quantity, product.Quantity, ErrInsufficientStock)
	}

	cart.Items[idx].Quantity = *quantity
	if err := s.save(ctx, cart, "item_updated"); err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// RemoveItem is a no-op for an item id the cart does not hold.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*transport.CartView, error) {
	cart, err := s.Repo.FindOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(cart.Items) {
		return s.view(ctx, cart)
	}
	cart.Items = kept

	if err := s.save(ctx, cart, "item_removed"); err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*transport.CartView, error) {
	cart, err := s.Repo.FindCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		return nil, fmt.Errorf("cart not found: user %s: %w", userID, ErrNotFound)
	}

	cart.Items = nil
	if err := s.save(ctx, cart, "cleared"); err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// Checkout bills every cart line and empties the cart in the same transaction.
func (s *CartService) Checkout(ctx context.Context, userID uuid.UUID) (*models.BillingRecord, error) {
	l := logging.FromContext(ctx).With("svc", "cart.checkout")

	cart, err := s.Repo.FindOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", ErrValidation)
	}

	lines := make([]repo.BillingLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, repo.BillingLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	rec, err := s.Repo.CheckoutCart(ctx, cart, lines)
	if err != nil {
		return nil, mapBillingErr(err)
	}

	l.Info("checkout_success", "billing_id", rec.ID, "total", rec.Total.String())
	publishBilling(ctx, s.Events, rec)
	return rec, nil
}

func (s *CartService) save(ctx context.Context, cart *models.Cart, action string) error {
	if err := s.Repo.SaveCart(ctx, cart); err != nil {
		if errors.Is(err, repo.ErrStaleVersion) {
			return fmt.Errorf("cart changed concurrently, reload and retry: %w", ErrConflict)
		}
		return fmt.Errorf("save cart: %w", err)
	}

	publish(ctx, s.Events, mykafka.TopicCart, cart.UserID.String(), "cart_updated", map[string]any{
		"userId": cart.UserID, "action": action, "items": len(cart.Items),
	})
	return nil
}

func (s *CartService) view(ctx context.Context, cart *models.Cart) (*transport.CartView, error) {
	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}

	out := &transport.CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  make([]transport.CartLine, 0, len(cart.Items)),
		Total:  decimal.Zero,
	}
	for _, it := range cart.Items {
		line := transport.CartLine{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity}
		if p, ok := products[it.ProductID]; ok {
			line.Product = transport.SummarizeProduct(p)
			out.Total = out.Total.Add(p.LineTotal(it.Quantity))
		}
		out.Items = append(out.Items, line)
	}
	return out, nil
}
