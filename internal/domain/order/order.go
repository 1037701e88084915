package order

import (
	"time"

	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Order is the aggregate created by checkout. Its items are immutable
// snapshots of the purchased products at the moment of purchase, so later
// price or name changes in the catalog never alter past orders.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status     Status          `gorm:"type:varchar(20);not null;default:'pending'"`
	Total      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a purchased line with price and name captured at checkout
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(100);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Line describes a product being purchased, used to build an order
type Line struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// NewOrder creates a pending order from purchase lines. The total is computed
// from the lines, never trusted from outside.
func NewOrder(customerID uuid.UUID, lines []Line) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.ErrEmptyCart
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Status:            StatusPending,
		Total:             decimal.Zero,
		Items:             make([]OrderItem, 0, len(lines)),
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		subtotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		o.Items = append(o.Items, OrderItem{
			BaseEntity:  shared.NewBaseEntity(),
			OrderID:     o.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.Round(2),
			Subtotal:    subtotal,
		})
		o.Total = o.Total.Add(subtotal)
	}
	o.Total = o.Total.Round(2)
	return o, nil
}

// Complete marks a pending order as completed
func (o *Order) Complete() error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATUS",
			"Only pending orders can be completed")
	}
	o.Status = StatusCompleted
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Cancel marks a pending order as cancelled
func (o *Order) Cancel() error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATUS",
			"Only pending orders can be cancelled")
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// IsCompleted reports whether the order reached the completed state
func (o *Order) IsCompleted() bool {
	return o.Status == StatusCompleted
}

// ContainsProduct reports whether the order includes the given product
func (o *Order) ContainsProduct(productID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// BelongsTo reports whether the order was placed by the given customer
func (o *Order) BelongsTo(customerID uuid.UUID) bool {
	return o.CustomerID == customerID
}
