package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindOrCreateCart is idempotent: concurrent first calls for the same user end up on one row.
func (r *GormRepo) FindOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	fresh := models.Cart{UserID: userID}
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&fresh).Error; err != nil {
		return nil, err
	}

	cart, err := r.FindCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return cart, nil
}

// FindCart returns nil, nil when the user never had a cart.
func (r *GormRepo) FindCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// SaveCart replaces the stored lines with cart.Items. It fails with ErrStaleVersion
// when another writer saved the cart after it was read.
func (r *GormRepo) SaveCart(ctx context.Context, cart *models.Cart) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveCartTx(tx, cart)
	})
}

func saveCartTx(tx *gorm.DB, cart *models.Cart) error {
	res := tx.Model(&models.Cart{}).
		Where("id = ? AND version = ?", cart.ID, cart.Version).
		Update("version", cart.Version+1)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}

	if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	for i := range cart.Items {
		cart.Items[i].CartID = cart.ID
		cart.Items[i].Position = i
	}
	if len(cart.Items) > 0 {
		if err := tx.Create(&cart.Items).Error; err != nil {
			return err
		}
	}

	cart.Version++
	return nil
}
