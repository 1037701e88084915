package review

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for reviews
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*Review, error)
	FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*Review, error)
	ExistsByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}
