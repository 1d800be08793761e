package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is created lazily, one per user. Version guards read-modify-write saves.
type Cart struct {
	Base
	UserID  uuid.UUID  `gorm:"uniqueIndex;not null"                   json:"userId"`
	Version uint       `gorm:"not null;default:0"                     json:"-"`
	Items   []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

type CartItem struct {
	Base
	CartID    uuid.UUID `gorm:"index;not null"               json:"-"`
	ProductID uuid.UUID `gorm:"not null"                     json:"productId"`
	Quantity  int       `gorm:"not null;check:quantity > 0"  json:"quantity"`
	Position  int       `gorm:"not null;default:0"           json:"-"`
}

type Wishlist struct {
	Base
	UserID  uuid.UUID      `gorm:"uniqueIndex;not null"                       json:"userId"`
	Version uint           `gorm:"not null;default:0"                         json:"-"`
	Items   []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
}

type WishlistItem struct {
	Base
	WishlistID uuid.UUID `gorm:"uniqueIndex:idx_wishlist_product;not null"  json:"-"`
	ProductID  uuid.UUID `gorm:"uniqueIndex:idx_wishlist_product;not null"  json:"productId"`
	Position   int       `gorm:"not null;default:0"                         json:"-"`
}

// BillingRecord is append-only: the repo exposes no update or delete for it.
type BillingRecord struct {
	ID        uuid.UUID       `gorm:"primaryKey"             json:"id"`
	UserID    *uuid.UUID      `gorm:"index"                  json:"userId,omitempty"`
	Total     decimal.Decimal `gorm:"type:numeric(14,2)"     json:"total"`
	Items     []BillingItem   `gorm:"foreignKey:BillingID"   json:"items"`
	CreatedAt time.Time       `                              json:"createdAt"`
}

type BillingItem struct {
	ID        uuid.UUID       `gorm:"primaryKey"             json:"id"`
	BillingID uuid.UUID       `gorm:"index;not null"         json:"-"`
	ProductID uuid.UUID       `gorm:"not null"               json:"productId"`
	Name      string          `                              json:"name"`
	Quantity  int             `gorm:"not null"               json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)"     json:"unitPrice"`
	Discount  float64         `                              json:"discount"`
	LineTotal decimal.Decimal `gorm:"type:numeric(14,2)"     json:"lineTotal"`
}

func All() []any {
	return []any{
		&User{},
		&Product{},
		&Cart{},
		&CartItem{},
		&Wishlist{},
		&WishlistItem{},
		&BillingRecord{},
		&BillingItem{},
	}
}

func (b *BillingRecord) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (i *BillingItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
