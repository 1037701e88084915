package catalog

import (
	"strings"
	"time"

	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// minimum sale price accepted by the marketplace
var minPrice = decimal.NewFromFloat(0.01)

// Product represents a listing in the catalog. It is the aggregate root for
// product operations and is exclusively owned by one seller.
type Product struct {
	shared.BaseAggregateRoot
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	Category    string          `gorm:"type:varchar(50);not null;index"`
	ImageURL    string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product listing for a seller
func NewProduct(sellerID uuid.UUID, name, description string, price decimal.Decimal, stock int, category string) (*Product, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerID:          sellerID,
		Name:              strings.TrimSpace(name),
		Description:       description,
		Price:             price.Round(2),
		Stock:             stock,
		Category:          strings.TrimSpace(category),
	}, nil
}

// Update changes the product's listing information
func (p *Product) Update(name, description string, price decimal.Decimal, stock int, category string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Price = price.Round(2)
	p.Stock = stock
	p.Category = strings.TrimSpace(category)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetImage sets the product image URL
func (p *Product) SetImage(url string) {
	p.ImageURL = url
	p.UpdatedAt = time.Now()
}

// IsAvailable reports whether the product can currently be sold
func (p *Product) IsAvailable() bool {
	return p.Stock > 0
}

// HasStock reports whether the requested quantity can be covered
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && quantity <= p.Stock
}

// DecrementStock removes quantity units from stock. The stock invariant
// (never negative) is enforced here as the last line of defense; callers
// are expected to have checked availability under a row lock.
func (p *Product) DecrementStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > p.Stock {
		return shared.NewInsufficientStockError(p.Name, p.Stock)
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsOwnedBy reports whether the product belongs to the given seller
func (p *Product) IsOwnedBy(sellerID uuid.UUID) bool {
	return p.SellerID == sellerID
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 100 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.LessThan(minPrice) {
		return shared.NewDomainError("INVALID_PRICE", "Price must be at least 0.01")
	}
	return nil
}
