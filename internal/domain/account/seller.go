package account

import (
	"strings"
	"time"

	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Seller is the vendor-side profile of a user. Products are owned by sellers.
type Seller struct {
	shared.BaseAggregateRoot
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	StoreName        string    `gorm:"type:varchar(150);not null;default:'Mi Tienda'"`
	StoreDescription string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Seller) TableName() string {
	return "sellers"
}

// SellerLocation is a physical point of sale registered by a seller
type SellerLocation struct {
	shared.BaseEntity
	SellerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Department      string    `gorm:"type:varchar(100);not null"`
	Municipality    string    `gorm:"type:varchar(100);not null"`
	Address         string    `gorm:"type:varchar(200);not null"`
	ZoneDescription string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SellerLocation) TableName() string {
	return "seller_locations"
}

// NewSeller creates a seller profile for a user
func NewSeller(userID uuid.UUID, storeName, storeDescription string) (*Seller, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	storeName = strings.TrimSpace(storeName)
	if storeName == "" {
		storeName = "Mi Tienda"
	}
	return &Seller{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		StoreName:         storeName,
		StoreDescription:  storeDescription,
	}, nil
}

// UpdateStore changes the seller's store presentation
func (s *Seller) UpdateStore(storeName, storeDescription string) error {
	storeName = strings.TrimSpace(storeName)
	if storeName == "" {
		return shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}
	s.StoreName = storeName
	s.StoreDescription = storeDescription
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// AddLocation registers a new point of sale for the seller
func (s *Seller) AddLocation(department, municipality, address, zoneDescription string) (*SellerLocation, error) {
	if strings.TrimSpace(department) == "" || strings.TrimSpace(municipality) == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Department and municipality are required")
	}
	return &SellerLocation{
		BaseEntity:      shared.NewBaseEntity(),
		SellerID:        s.ID,
		Department:      strings.TrimSpace(department),
		Municipality:    strings.TrimSpace(municipality),
		Address:         strings.TrimSpace(address),
		ZoneDescription: zoneDescription,
	}, nil
}
