package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	pricingapp "github.com/soleneo/backend/internal/application/pricing"
	"github.com/soleneo/backend/internal/domain/pricing"
)

// OverrideHandler handles customer price override administration
type OverrideHandler struct {
	BaseHandler
	overrideService *pricingapp.OverrideService
}

// NewOverrideHandler creates a new OverrideHandler
func NewOverrideHandler(overrideService *pricingapp.OverrideService) *OverrideHandler {
	return &OverrideHandler{overrideService: overrideService}
}

// RegisterRoutes registers override routes
func (h *OverrideHandler) RegisterRoutes(rg *gin.RouterGroup) {
	overrides := rg.Group("/customers/:customerId/price-overrides")
	{
		overrides.PUT("/:variantId", h.Upsert)
		overrides.GET("/:variantId", h.Get)
		overrides.DELETE("/:variantId", h.Delete)
	}
}

// UpsertOverrideRequest represents the request to create or replace an override
type UpsertOverrideRequest struct {
	Type      string          `json:"type" binding:"required,oneof=FIXED PERCENTAGE"`
	Value     decimal.Decimal `json:"value" binding:"omitempty,gte=0"`
	StartDate *time.Time      `json:"start_date"`
	EndDate   *time.Time      `json:"end_date"`
}

// OverrideResponse represents a price override in API responses
type OverrideResponse struct {
	CustomerID string          `json:"customer_id"`
	VariantID  string          `json:"variant_id"`
	Type       string          `json:"type"`
	Value      decimal.Decimal `json:"value"`
	StartDate  *time.Time      `json:"start_date,omitempty"`
	EndDate    *time.Time      `json:"end_date,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func toOverrideResponse(o *pricing.PriceOverride) OverrideResponse {
	return OverrideResponse{
		CustomerID: o.CustomerID.String(),
		VariantID:  o.VariantID.String(),
		Type:       string(o.Type),
		Value:      o.Value,
		StartDate:  o.StartDate,
		EndDate:    o.EndDate,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func (h *OverrideHandler) pathIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return uuid.Nil, uuid.Nil, false
	}
	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return uuid.Nil, uuid.Nil, false
	}
	return customerID, variantID, true
}

// Upsert creates or replaces the override for a (customer, variant) pair
func (h *OverrideHandler) Upsert(c *gin.Context) {
	customerID, variantID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req UpsertOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	override, err := h.overrideService.Upsert(c.Request.Context(), pricingapp.UpsertOverrideRequest{
		CustomerID: customerID,
		VariantID:  variantID,
		Type:       pricing.OverrideType(req.Type),
		Value:      req.Value,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOverrideResponse(override))
}

// Get returns the override for a (customer, variant) pair
func (h *OverrideHandler) Get(c *gin.Context) {
	customerID, variantID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	override, err := h.overrideService.Get(c.Request.Context(), customerID, variantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOverrideResponse(override))
}

// Delete removes the override for a (customer, variant) pair
func (h *OverrideHandler) Delete(c *gin.Context) {
	customerID, variantID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	if err := h.overrideService.Delete(c.Request.Context(), customerID, variantID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
