package handler

import (
	"fmt"
	"net/http"

	orderapp "github.com/mercado/backend/internal/application/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles order history and comprobante endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) requireCustomerID(c *gin.Context) (uuid.UUID, bool) {
	customerID, ok := getCustomerID(c)
	if !ok {
		h.Forbidden(c, "A customer profile is required to access orders")
		return uuid.Nil, false
	}
	return customerID, true
}

// List returns the authenticated customer's order history
func (h *OrderHandler) List(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	orders, total, err := h.orderService.List(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetByID returns one of the customer's orders
func (h *OrderHandler) GetByID(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), customerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Complete marks a pending order as completed
func (h *OrderHandler) Complete(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Complete(c.Request.Context(), customerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel cancels a pending order
func (h *OrderHandler) Cancel(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), customerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Comprobante renders the order's comprobante PDF and serves it as a
// download. The tipo path segment selects the document variant.
func (h *OrderHandler) Comprobante(c *gin.Context) {
	customerID, ok := h.requireCustomerID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	filename, pdf, err := h.orderService.Comprobante(c.Request.Context(), customerID, orderID, c.Param("tipo"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
