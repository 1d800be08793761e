package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleCustomer   = "customer"
	RoleShopkeeper = "shopkeeper"
	RoleAdmin      = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleShopkeeper, RoleAdmin:
		return true
	}
	return false
}

type Base struct {
	ID        uuid.UUID `gorm:"primaryKey"  json:"id"`
	CreatedAt time.Time `                   json:"createdAt"`
	UpdatedAt time.Time `                   json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type User struct {
	Base
	Username     string `gorm:"uniqueIndex;not null"  json:"username"`
	Email        string `gorm:"uniqueIndex;not null"  json:"email"`
	PasswordHash string `gorm:"not null"              json:"-"`
	Role         string `gorm:"not null;index"        json:"role"`
	FirstName    string `                             json:"firstName"`
	LastName     string `                             json:"lastName"`
	Phone        string `                             json:"phone"`
	Address      string `                             json:"address"`
	StoreName    string `                             json:"storeName"`
	Bio          string `                             json:"bio"`
}

type Product struct {
	Base
	SerialNumber    string          `gorm:"index"                  json:"serialNumber,omitempty"`
	Name            string          `gorm:"not null"               json:"name"`
	Description     string          `                              json:"description"`
	Quantity        int             `gorm:"not null;default:0"     json:"quantity"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2)"     json:"price"`
	Discount        float64         `gorm:"not null;default:0"     json:"discount"`
	ExpiryDate      time.Time       `gorm:"not null"               json:"expiryDate"`
	ManufactureDate time.Time       `gorm:"not null"               json:"manufactureDate"`
	ImageURL        string          `                              json:"imageUrl,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// LineTotal is price × qty × (1 − discount/100), rounded to cents.
func (p *Product) LineTotal(qty int) decimal.Decimal {
	factor := hundred.Sub(decimal.NewFromFloat(p.Discount)).Div(hundred)
	return p.Price.Mul(decimal.NewFromInt(int64(qty))).Mul(factor).Round(2)
}
