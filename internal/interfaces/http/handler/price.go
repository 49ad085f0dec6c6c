package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	pricingapp "github.com/soleneo/backend/internal/application/pricing"
)

// PriceHandler handles price resolution requests
type PriceHandler struct {
	BaseHandler
	priceService *pricingapp.PriceService
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(priceService *pricingapp.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// RegisterRoutes registers price routes
func (h *PriceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prices := rg.Group("/prices")
	{
		prices.GET("/:variantId", h.Resolve)
		prices.POST("/batch", h.ResolveBatch)
	}
}

// BatchPriceRequest represents a batch price resolution request
type BatchPriceRequest struct {
	CustomerID string   `json:"customer_id" binding:"omitempty,uuid"`
	VariantIDs []string `json:"variant_ids" binding:"required,min=1,dive,uuid"`
}

// Resolve returns the effective price of one variant. Without a
// customer_id query parameter the catalog price is returned.
func (h *PriceHandler) Resolve(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	customerID := uuid.Nil
	if raw := c.Query("customer_id"); raw != "" {
		customerID, err = uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID")
			return
		}
	}

	resolved, err := h.priceService.Resolve(c.Request.Context(), customerID, variantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resolved)
}

// ResolveBatch returns effective prices for a set of variants in request order.
func (h *PriceHandler) ResolveBatch(c *gin.Context) {
	var req BatchPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID := uuid.Nil
	if req.CustomerID != "" {
		customerID = uuid.MustParse(req.CustomerID)
	}

	variantIDs := make([]uuid.UUID, len(req.VariantIDs))
	for i, raw := range req.VariantIDs {
		variantIDs[i] = uuid.MustParse(raw)
	}

	resolved, err := h.priceService.ResolveBatch(c.Request.Context(), customerID, variantIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resolved)
}
