package order

import (
	"context"

	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the persistence contract for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Order], error)
	// HasCompletedPurchase reports whether the customer has a completed order
	// containing the product. It backs the review gate.
	HasCompletedPurchase(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
	Save(ctx context.Context, order *Order) error
}
