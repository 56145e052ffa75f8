package middleware

import (
	"net/http"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize applies when no limit is configured
const DefaultMaxBodySize int64 = 10 << 20

// BodyLimit returns a middleware that limits request body size. Requests
// that declare a larger Content-Length are rejected up front; bodies without
// a length are cut off by http.MaxBytesReader while the handler reads them.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			abortWithError(c, dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
