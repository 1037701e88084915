package handler

import (
	"net/http"

	catalogapp "github.com/mercado/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductHandler handles catalog endpoints, both the public storefront
// surface and seller-side listing management
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	publicBaseURL  string
}

// NewProductHandler creates a new ProductHandler. publicBaseURL is the
// externally visible origin used to build product links in the
// available-products feed.
func NewProductHandler(productService *catalogapp.ProductService, publicBaseURL string) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		publicBaseURL:  publicBaseURL,
	}
}

// List returns the public catalog with pagination, category filter and search
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
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

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// GetByID returns a single product
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// ListRelated returns other available products from the same category
func (h *ProductHandler) ListRelated(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	products, err := h.productService.ListRelated(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// availableFeedResponse is the wire shape of the read-only stock feed
type availableFeedResponse struct {
	Count     int                                   `json:"count"`
	Productos []catalogapp.AvailableProductResponse `json:"productos"`
}

// ListAvailable serves the read-only feed of in-stock products. The payload
// shape is fixed for external consumers and bypasses the standard envelope.
func (h *ProductHandler) ListAvailable(c *gin.Context) {
	products, err := h.productService.ListAvailable(c.Request.Context(), h.publicBaseURL)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, availableFeedResponse{
		Count:     len(products),
		Productos: products,
	})
}

// Create registers a new product listing for the authenticated seller
func (h *ProductHandler) Create(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		h.Forbidden(c, "A seller profile is required to manage products")
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update edits one of the authenticated seller's listings
func (h *ProductHandler) Update(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		h.Forbidden(c, "A seller profile is required to manage products")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), sellerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes one of the authenticated seller's listings
func (h *ProductHandler) Delete(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		h.Forbidden(c, "A seller profile is required to manage products")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), sellerID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListMine returns the authenticated seller's own listings
func (h *ProductHandler) ListMine(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		h.Forbidden(c, "A seller profile is required to manage products")
		return
	}

	products, err := h.productService.ListBySeller(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}
