package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type WishlistService struct {
	Repo   *repo.GormRepo
	Events mykafka.Publisher
}

func (s *WishlistService) Get(ctx context.Context, userID uuid.UUID) (*transport.WishlistView, error) {
	list, err := s.Repo.FindOrCreateWishlist(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	return s.view(ctx, list)
}

func (s *WishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (*transport.WishlistView, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("productId is required: %w", ErrValidation)
	}

	product, err := s.Repo.FindProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: id %s: %w", productID, ErrNotFound)
	}

	list, err := s.Repo.FindOrCreateWishlist(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	for _, it := range list.Items {
		if it.ProductID == productID {
			return nil, fmt.Errorf("product already in wishlist: id %s: %w", productID, ErrAlreadyExists)
		}
	}

	list.Items = append(list.Items, models.WishlistItem{ProductID: productID})
	if err := s.save(ctx, list, "item_added"); err != nil {
		return nil, err
	}
	return s.view(ctx, list)
}

func (s *WishlistService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*transport.WishlistView, error) {
	list, err := s.Repo.FindOrCreateWishlist(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}

	kept := make([]models.WishlistItem, 0, len(list.Items))
	for _, it := range list.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(list.Items) {
		return s.view(ctx, list)
	}
	list.Items = kept

	if err := s.save(ctx, list, "item_removed"); err != nil {
		return nil, err
	}
	return s.view(ctx, list)
}

func (s *WishlistService) save(ctx context.Context, list *models.Wishlist, action string) error {
	if err := s.Repo.SaveWishlist(ctx, list); err != nil {
		switch {
		case errors.Is(err, repo.ErrStaleVersion):
			return fmt.Errorf("wishlist changed concurrently, reload and retry: %w", ErrConflict)
		case errors.Is(err, repo.ErrDuplicate):
			return fmt.Errorf("product already in wishlist: %w", ErrAlreadyExists)
		}
		return fmt.Errorf("save wishlist: %w", err)
	}

	publish(ctx, s.Events, mykafka.TopicCart, list.UserID.String(), "wishlist_updated", map[string]any{
		"userId": list.UserID, "action": action, "items": len(list.Items),
	})
	return nil
}

func (s *WishlistService) view(ctx context.Context, list *models.Wishlist) (*transport.WishlistView, error) {
	ids := make([]uuid.UUID, 0, len(list.Items))
	for _, it := range list.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load wishlist products: %w", err)
	}

	out := &transport.WishlistView{
		ID:     list.ID,
		UserID: list.UserID,
		Items:  make([]transport.WishlistLine, 0, len(list.Items)),
	}
	for _, it := range list.Items {
		line := transport.WishlistLine{ID: it.ID, ProductID: it.ProductID}
		if p, ok := products[it.ProductID]; ok {
			line.Product = transport.SummarizeProduct(p)
		}
		out.Items = append(out.Items, line)
	}
	return out, nil
}
