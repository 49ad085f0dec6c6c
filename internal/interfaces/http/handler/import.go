package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/soleneo/backend/internal/application/catalog"
)

// ImportHandler handles supplier feed import requests
type ImportHandler struct {
	BaseHandler
	importService *catalogapp.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *catalogapp.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// RegisterRoutes registers import routes
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	{
		catalog.POST("/import", h.Import)
	}
}

// Import ingests a raw supplier feed and upserts the catalog.
// The body is the feed itself, not a JSON wrapper. A run that
// recorded row errors still returns 200 with success=false in the
// payload so the caller can inspect partial results.
func (h *ImportHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}
	if len(data) == 0 {
		h.BadRequest(c, "Request body is empty")
		return
	}

	result := h.importService.Import(c.Request.Context(), data)
	h.Success(c, result)
}
