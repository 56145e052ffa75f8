package middleware

import (
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// abortWithError stops the chain with the standard error body
func abortWithError(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, GetRequestID(c)))
}
