package transport

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
)

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	StoreName string `json:"storeName"`
	Bio       string `json:"bio"`
}

// LoginRequest accepts the login under any of the three names older clients send.
type LoginRequest struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Identifier() string {
	for _, v := range []string{r.Login, r.Username, r.Email} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	StoreName *string `json:"storeName"`
	Bio       *string `json:"bio"`
}

type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

type CreateProductRequest struct {
	SerialNumber    string           `json:"serialNumber"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Quantity        *int             `json:"quantity"`
	Price           *decimal.Decimal `json:"price"`
	Discount        *float64         `json:"discount"`
	ExpiryDate      string           `json:"expiryDate"`
	ManufactureDate string           `json:"manufactureDate"`
	ImageURL        string           `json:"imageUrl"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
	HasPrev    bool  `json:"hasPrev"`
	HasNext    bool  `json:"hasNext"`
}

type ProductPage struct {
	Items []models.Product `json:"items"`
	Meta  PageMeta         `json:"meta"`
}

type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

type AddWishlistItemRequest struct {
	ProductID string `json:"productId"`
}

// ProductSummary is the live product data joined onto cart and wishlist lines.
type ProductSummary struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Discount    float64         `json:"discount"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	ExpiryDate  time.Time       `json:"expiryDate"`
}

func SummarizeProduct(p models.Product) *ProductSummary {
	return &ProductSummary{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Discount:    p.Discount,
		Stock:       p.Quantity,
		ImageURL:    p.ImageURL,
		ExpiryDate:  p.ExpiryDate,
	}
}

type CartLine struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   *ProductSummary `json:"product"`
}

type CartView struct {
	ID     uuid.UUID       `json:"id"`
	UserID uuid.UUID       `json:"userId"`
	Items  []CartLine      `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

type WishlistLine struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Product   *ProductSummary `json:"product"`
}

type WishlistView struct {
	ID     uuid.UUID      `json:"id"`
	UserID uuid.UUID      `json:"userId"`
	Items  []WishlistLine `json:"items"`
}

type BillingLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateBillingRequest struct {
	Items []BillingLineRequest `json:"items"`
}

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}
