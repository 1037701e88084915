package review

import (
	"context"
	"strings"

	"github.com/mercado/backend/internal/domain/order"
	"github.com/mercado/backend/internal/domain/review"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReviewService handles purchase-gated product reviews. Only customers with a
// completed order containing the product may review it, once.
type ReviewService struct {
	reviewRepo review.Repository
	orderRepo  order.Repository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo review.Repository, orderRepo order.Repository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
	}
}

// Eligibility reports whether the customer can review the product
func (s *ReviewService) Eligibility(ctx context.Context, customerID, productID uuid.UUID) (*EligibilityResponse, error) {
	purchased, err := s.orderRepo.HasCompletedPurchase(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	reviewed, err := s.reviewRepo.ExistsByCustomerAndProduct(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	return &EligibilityResponse{
		CanReview:       purchased && !reviewed,
		AlreadyReviewed: reviewed,
		HasPurchased:    purchased,
	}, nil
}

// Submit creates a review after checking the purchase gate
func (s *ReviewService) Submit(ctx context.Context, customerID uuid.UUID, req SubmitReviewRequest) (*ReviewResponse, error) {
	purchased, err := s.orderRepo.HasCompletedPurchase(ctx, customerID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, shared.ErrNotPurchased
	}

	reviewed, err := s.reviewRepo.ExistsByCustomerAndProduct(ctx, customerID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, shared.ErrAlreadyReviewed
	}

	r, err := review.NewReview(req.ProductID, customerID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// Update edits the customer's existing review of a product
func (s *ReviewService) Update(ctx context.Context, customerID, productID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByCustomerAndProduct(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if err := r.Update(req.Rating, req.Comment); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	response := ToReviewResponse(r)
	return &response, nil
}

// Delete removes the customer's review of a product
func (s *ReviewService) Delete(ctx context.Context, customerID, productID uuid.UUID) error {
	r, err := s.reviewRepo.FindByCustomerAndProduct(ctx, customerID, productID)
	if err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, r.ID)
}

// ListFilter narrows a review listing. Zero values mean no filtering.
type ListFilter struct {
	Rating int
	Search string
}

func (f ListFilter) matches(r *review.Review) bool {
	if f.Rating != 0 && r.Rating != f.Rating {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(r.Comment), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// ListByProduct retrieves a product's reviews with their average rating.
// The average always covers every review of the product, not just the
// filtered ones.
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, filter ListFilter) (*ProductReviewsResponse, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := &ProductReviewsResponse{
		Reviews: make([]ReviewResponse, 0, len(reviews)),
	}
	for _, r := range reviews {
		if !filter.matches(r) {
			continue
		}
		response.Reviews = append(response.Reviews, ToReviewResponse(r))
	}
	response.Count = len(response.Reviews)

	if len(reviews) > 0 {
		avg, err := s.reviewRepo.AverageRating(ctx, productID)
		if err != nil {
			return nil, err
		}
		response.AverageRating = avg
	}
	return response, nil
}
