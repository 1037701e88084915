package handler

import (
	"strconv"

	reviewapp "github.com/mercado/backend/internal/application/review"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewHandler handles purchase-gated product reviews
type ReviewHandler struct {
	BaseHandler
	reviewService *reviewapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *reviewapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) requireCustomerID(c *gin.Context) (uuid.UUID, bool) {
	customerID, ok := getCustomerID(c)
	if !ok {
		h.Forbidden(c, "A customer profile is required to review products")
		return uuid.Nil, false
	}
	return customerID, true
}

// ListByProduct returns a product's reviews with their average rating,
// optionally filtered by calificacion (exact rating) and busqueda (comment
// text). This endpoint is public.
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	filter := reviewapp.ListFilter{Search: c.Query("busqueda")}
	if raw := c.Query("calificacion"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid rating filter")
			return
		}
		filter.Rating = rating
	}

	reviews, err := h.reviewService.ListByProduct(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reviews)
}

// Eligibility reports whether the customer may review a product
func (h *ReviewHandler) Eligibility(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	eligibility, err := h.reviewService.Eligibility(c.Request.Context(), customerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, eligibility)
}

// Submit creates a review. Only customers with a completed purchase of the
// product may review it, once.
func (h *ReviewHandler) Submit(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	var req reviewapp.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, review)
}

// Update edits the customer's existing review of a product
func (h *ReviewHandler) Update(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req reviewapp.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), customerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}

// Delete removes the customer's review of a product
func (h *ReviewHandler) Delete(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), customerID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
