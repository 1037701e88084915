package handler

import (
	currencyapp "github.com/mercado/backend/internal/application/currency"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CurrencyHandler handles currency display endpoints
type CurrencyHandler struct {
	BaseHandler
	currencyService *currencyapp.Service
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(currencyService *currencyapp.Service) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
	}
}

// Rates returns USD and EUR exchange rates for one COP. Rate lookups never
// fail outward; the service degrades to fallback rates.
func (h *CurrencyHandler) Rates(c *gin.Context) {
	h.Success(c, h.currencyService.Rates(c.Request.Context()))
}

// Display formats a COP amount for the storefront together with its USD and
// EUR equivalents. The amount arrives in the monto query parameter.
func (h *CurrencyHandler) Display(c *gin.Context) {
	monto := c.Query("monto")
	if monto == "" {
		h.BadRequest(c, "The monto query parameter is required")
		return
	}

	amount, err := decimal.NewFromString(monto)
	if err != nil || amount.IsNegative() {
		h.BadRequest(c, "monto must be a non-negative decimal amount")
		return
	}

	h.Success(c, h.currencyService.Display(c.Request.Context(), amount))
}
