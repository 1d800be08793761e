package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) FindOrCreateWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	fresh := models.Wishlist{UserID: userID}
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&fresh).Error; err != nil {
		return nil, err
	}

	var list models.Wishlist
	if err := r.DB.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("user_id = ?", userID).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *GormRepo) SaveWishlist(ctx context.Context, list *models.Wishlist) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Wishlist{}).
			Where("id = ? AND version = ?", list.ID, list.Version).
			Update("version", list.Version+1)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleVersion
		}

		if err := tx.Where("wishlist_id = ?", list.ID).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		for i := range list.Items {
			list.Items[i].WishlistID = list.ID
			list.Items[i].Position = i
		}
		if len(list.Items) > 0 {
			if err := tx.Create(&list.Items).Error; err != nil {
				if isUniqueViolation(err) {
					return ErrDuplicate
				}
				return err
			}
		}

		list.Version++
		return nil
	})
}
