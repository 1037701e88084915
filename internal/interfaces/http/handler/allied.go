package handler

import (
	"net/http"

	alliedapp "github.com/mercado/backend/internal/application/allied"
	"github.com/gin-gonic/gin"
)

// AlliedHandler handles the allied store aggregation endpoints
type AlliedHandler struct {
	BaseHandler
	alliedService *alliedapp.Service
}

// NewAlliedHandler creates a new AlliedHandler
func NewAlliedHandler(alliedService *alliedapp.Service) *AlliedHandler {
	return &AlliedHandler{
		alliedService: alliedService,
	}
}

// Products returns the aggregated allied store feed, optionally filtered by
// the q and categoria query params. Upstream failures are reported in the
// payload with a 200 status so the storefront can render a notice instead
// of an error page.
func (h *AlliedHandler) Products(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("categoria")

	var result alliedapp.Result
	if query != "" || category != "" {
		result = h.alliedService.Search(c.Request.Context(), query, category)
	} else {
		result = h.alliedService.Products(c.Request.Context())
	}
	c.JSON(http.StatusOK, result)
}

// Categories returns the distinct categories present in the allied feed
func (h *AlliedHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.alliedService.Categories(c.Request.Context()))
}

// ClearCache drops the cached allied feed and refetches it from the partner
func (h *AlliedHandler) ClearCache(c *gin.Context) {
	if err := h.alliedService.ClearCache(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
