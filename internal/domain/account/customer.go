package account

import (
	"strings"
	"time"

	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer is the buyer-side profile of a user. Carts, orders and reviews
// reference customers, never users directly.
type Customer struct {
	shared.BaseAggregateRoot
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Address string    `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a customer profile for a user
func NewCustomer(userID uuid.UUID, address string) (*Customer, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Address:           strings.TrimSpace(address),
	}, nil
}

// UpdateAddress changes the customer's shipping address
func (c *Customer) UpdateAddress(address string) {
	c.Address = strings.TrimSpace(address)
	c.UpdatedAt = time.Now()
}
