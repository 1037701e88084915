package catalog

import (
	"context"

	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDForUpdate loads a product holding a row lock until the
	// surrounding transaction ends. Outside a transaction it behaves like
	// FindByID.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Product], error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]*Product, error)
	FindByCategory(ctx context.Context, category string, excludeID uuid.UUID, limit int) ([]*Product, error)
	FindAvailable(ctx context.Context) ([]*Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
