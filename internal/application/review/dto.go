package review

import (
	"time"

	"github.com/mercado/backend/internal/domain/review"
	"github.com/google/uuid"
)

// SubmitReviewRequest represents a request to review a purchased product
type SubmitReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment" binding:"max=1000"`
}

// UpdateReviewRequest represents a request to edit an existing review
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// EligibilityResponse reports whether a customer may review a product
type EligibilityResponse struct {
	CanReview       bool `json:"can_review"`
	AlreadyReviewed bool `json:"already_reviewed"`
	HasPurchased    bool `json:"has_purchased"`
}

// ProductReviewsResponse bundles a product's reviews with their average
type ProductReviewsResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
	Count         int              `json:"count"`
}

// ToReviewResponse converts a domain review to a response DTO
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		ProductID:  r.ProductID,
		CustomerID: r.CustomerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
