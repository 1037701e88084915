package handler

import (
	cartapp "github.com/mercado/backend/internal/application/cart"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles shopping cart endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// requireCustomerID resolves the customer profile from the token. Accounts
// without a customer profile cannot shop.
func (h *CartHandler) requireCustomerID(c *gin.Context) (uuid.UUID, bool) {
	customerID, ok := getCustomerID(c)
	if !ok {
		h.Forbidden(c, "A customer profile is required to use the cart")
		return uuid.Nil, false
	}
	return customerID, true
}

// Get returns the authenticated customer's cart
func (h *CartHandler) Get(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem adds a product to the cart, merging quantities for repeat adds
func (h *CartHandler) AddItem(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// UpdateItem sets a line's quantity. Zero removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req cartapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), customerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem drops a product from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), customerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), customerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Badge returns the total item count for the cart indicator
func (h *CartHandler) Badge(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	count, err := h.cartService.Badge(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"count": count})
}
