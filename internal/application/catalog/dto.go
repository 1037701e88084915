package catalog

import (
	"time"

	"github.com/mercado/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product listing
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	Category    string          `json:"category" binding:"required,min=1,max=50"`
	ImageURL    string          `json:"image_url"`
}

// UpdateProductRequest represents a request to update a product listing
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	Category    string          `json:"category" binding:"required,min=1,max=50"`
	ImageURL    string          `json:"image_url"`
}

// ProductListFilter represents filters for product listing
type ProductListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Category string  `form:"category"`
	Search   string  `form:"search"`
	PriceMin float64 `form:"price_min"`
	PriceMax float64 `form:"price_max"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	SellerID      uuid.UUID       `json:"seller_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"image_url"`
	Available     bool            `json:"available"`
	AverageRating float64         `json:"average_rating,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AvailableProductResponse is the compact shape served by the read-only feed
type AvailableProductResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"nombre"`
	Stock int       `json:"stock"`
	URL   string    `json:"url"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Available:   p.IsAvailable(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []*catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(p))
	}
	return responses
}
