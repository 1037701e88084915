package handler

import (
	checkoutapp "github.com/mercado/backend/internal/application/checkout"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles the checkout endpoint
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// PlaceOrder converts the cart into an order. Stock decrements, order
// creation and cart clearing commit or roll back as one unit.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		h.Forbidden(c, "A customer profile is required to check out")
		return
	}

	order, err := h.checkoutService.PlaceOrder(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}
