package handlers

import (
	"net/http"

	"movebook/services/pricing"
	"movebook/utils"

	"github.com/gin-gonic/gin"
)

// PricingHandler serves the cached rate table to the estimate flow.
type PricingHandler struct {
	Catalog pricing.CatalogService
}

func NewPricingHandler(catalog pricing.CatalogService) *PricingHandler {
	return &PricingHandler{Catalog: catalog}
}

// GetRates handles GET /api/pricing/rates.
func (h *PricingHandler) GetRates(c *gin.Context) {
	table, err := h.Catalog.Rates(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "pricing catalog unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, table)
}

// InvalidateRates handles POST /api/pricing/invalidate, forcing a re-fetch on
// the next read.
func (h *PricingHandler) InvalidateRates(c *gin.Context) {
	if err := h.Catalog.Invalidate(c.Request.Context()); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "invalidation failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"invalidated": true})
}
