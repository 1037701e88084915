package account

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Save(ctx context.Context, user *User) error
}

// CustomerRepository defines the interface for customer profile persistence
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
}

// SellerRepository defines the interface for seller profile persistence
type SellerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Seller, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Seller, error)
	Save(ctx context.Context, seller *Seller) error
	SaveLocation(ctx context.Context, location *SellerLocation) error
	FindLocations(ctx context.Context, sellerID uuid.UUID) ([]SellerLocation, error)
}
