package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

type BillingLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateBilling decrements stock for every line and stores the priced record in one
// transaction. Lines must already be merged by product.
func (r *GormRepo) CreateBilling(ctx context.Context, userID *uuid.UUID, lines []BillingLine) (*models.BillingRecord, error) {
	var rec *models.BillingRecord
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		rec, err = createBillingTx(tx, userID, lines)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// CheckoutCart bills the cart lines and empties the cart atomically.
func (r *GormRepo) CheckoutCart(ctx context.Context, cart *models.Cart, lines []BillingLine) (*models.BillingRecord, error) {
	var rec *models.BillingRecord
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		rec, err = createBillingTx(tx, &cart.UserID, lines)
		if err != nil {
			return err
		}
		cleared := *cart
		cleared.Items = nil
		if err := saveCartTx(tx, &cleared); err != nil {
			return err
		}
		cart.Items = nil
		cart.Version = cleared.Version
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func createBillingTx(tx *gorm.DB, userID *uuid.UUID, lines []BillingLine) (*models.BillingRecord, error) {
	rec := &models.BillingRecord{
		UserID: userID,
		Total:  decimal.Zero,
		Items:  make([]models.BillingItem, 0, len(lines)),
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %d for %s", ErrInvalidQuantity, line.Quantity, line.ProductID)
		}

		var product models.Product
		if err := tx.Where("id = ?", line.ProductID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
			}
			return nil, err
		}

		res := tx.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", line.ProductID, line.Quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", line.Quantity))
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, product.Name, product.Quantity, line.Quantity)
		}

		lineTotal := product.LineTotal(line.Quantity)
		rec.Items = append(rec.Items, models.BillingItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			Discount:  product.Discount,
			LineTotal: lineTotal,
		})
		rec.Total = rec.Total.Add(lineTotal)
	}

	if err := tx.Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// ListBillings returns newest first. A nil userID lists every record.
func (r *GormRepo) ListBillings(ctx context.Context, userID *uuid.UUID) ([]models.BillingRecord, error) {
	q := r.DB.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var out []models.BillingRecord
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
