package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for carts
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	DeleteItems(ctx context.Context, cartID uuid.UUID) error
}
