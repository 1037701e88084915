package review

import (
	"strings"
	"time"

	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Review is a customer's opinion about a purchased product. A customer can
// review each product at most once.
type Review struct {
	shared.BaseAggregateRoot
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_customer_product"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_customer_product"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a review with a rating between 1 and 5
func NewReview(productID, customerID uuid.UUID, rating int, comment string) (*Review, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.ErrInvalidRating
	}
	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		CustomerID:        customerID,
		Rating:            rating,
		Comment:           strings.TrimSpace(comment),
	}, nil
}

// Update changes the rating and comment of an existing review
func (r *Review) Update(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return shared.ErrInvalidRating
	}
	r.Rating = rating
	r.Comment = strings.TrimSpace(comment)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}
