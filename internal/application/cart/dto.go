package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents a request to change a line quantity.
// A quantity of zero removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// CartItemResponse is a cart line enriched with current catalog data
type CartItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageURL    string          `json:"image_url"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Stock       int             `json:"stock"`
}

// CartResponse represents the full cart in API responses
type CartResponse struct {
	ID            uuid.UUID          `json:"id"`
	Items         []CartItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	TotalQuantity int                `json:"total_quantity"`
}
