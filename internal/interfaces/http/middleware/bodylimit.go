package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soleneo/backend/internal/interfaces/http/dto"
)

// BodyLimit caps the request body at maxBytes. Supplier feed uploads
// go through this, so the limit has to stay generous enough for a
// full catalog export.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Declared size is checked up front so oversized uploads are
		// rejected before any bytes are read.
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(
				http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size"),
			)
			return
		}

		// Chunked requests carry no Content-Length; MaxBytesReader
		// makes the handler's read fail once the cap is hit.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
