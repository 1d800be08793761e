package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

// MaxLineQuantity bounds a single cart or billing line, merged totals included.
const MaxLineQuantity = 1_000_000

type BillingService struct {
	Repo   *repo.GormRepo
	Events mykafka.Publisher
}

// Create records a purchase. userID is nil for anonymous purchases.
func (s *BillingService) Create(ctx context.Context, userID *uuid.UUID, req transport.CreateBillingRequest) (*models.BillingRecord, error) {
	l := logging.FromContext(ctx).With("svc", "billing.create")

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("at least one item is required: %w", ErrValidation)
	}

	lines := make([]repo.BillingLine, 0, len(req.Items))
	seen := make(map[uuid.UUID]int, len(req.Items))
	for i, it := range req.Items {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil || productID == uuid.Nil {
			return nil, fmt.Errorf("items[%d].productId is not a uuid: %w", i, ErrValidation)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("items[%d].quantity must be more than zero: %w", i, ErrValidation)
		}
		if it.Quantity > MaxLineQuantity {
			return nil, fmt.Errorf("items[%d].quantity exceeds %d: %w", i, MaxLineQuantity, ErrValidation)
		}
		if at, ok := seen[productID]; ok {
			if lines[at].Quantity > MaxLineQuantity-it.Quantity {
				return nil, fmt.Errorf("items[%d].quantity exceeds %d for the product: %w", i, MaxLineQuantity, ErrValidation)
			}
			lines[at].Quantity += it.Quantity
			continue
		}
		seen[productID] = len(lines)
		lines = append(lines, repo.BillingLine{ProductID: productID, Quantity: it.Quantity})
	}

	rec, err := s.Repo.CreateBilling(ctx, userID, lines)
	if err != nil {
		return nil, mapBillingErr(err)
	}

	l.Info("billing_created", "billing_id", rec.ID, "total", rec.Total.String())
	publishBilling(ctx, s.Events, rec)
	return rec, nil
}

// List returns the caller's own records, or every record for an admin.
func (s *BillingService) List(ctx context.Context, user *models.User) ([]models.BillingRecord, error) {
	if user == nil {
		return nil, fmt.Errorf("no identity: %w", ErrUnauthorized)
	}

	var filter *uuid.UUID
	if user.Role != models.RoleAdmin {
		filter = &user.ID
	}
	out, err := s.Repo.ListBillings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list billings: %w", err)
	}
	return out, nil
}

func mapBillingErr(err error) error {
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		return fmt.Errorf("%v: %w", err, ErrNotFound)
	case errors.Is(err, repo.ErrInsufficientStock):
		return fmt.Errorf("%v: %w", err, ErrInsufficientStock)
	case errors.Is(err, repo.ErrInvalidQuantity):
		return fmt.Errorf("%v: %w", err, ErrValidation)
	case errors.Is(err, repo.ErrStaleVersion):
		return fmt.Errorf("cart changed concurrently, reload and retry: %w", ErrConflict)
	}
	return fmt.Errorf("create billing: %w", err)
}

func publishBilling(ctx context.Context, pub mykafka.Publisher, rec *models.BillingRecord) {
	key := rec.ID.String()
	if rec.UserID != nil {
		key = rec.UserID.String()
	}
	publish(ctx, pub, mykafka.TopicBilling, key, "billing_created", rec)
}
