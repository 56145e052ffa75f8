// Package handler holds the gin handlers of the REST API.
package handler

import (
	"errors"
	"net/http"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/logger"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// List sends one page of items with its pagination block
func (h *BaseHandler) List(c *gin.Context, items any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewListResponse(items, total, page, pageSize))
}

// Deleted sends the body returned by DELETE endpoints
func (h *BaseHandler) Deleted(c *gin.Context, id uuid.UUID) {
	h.Success(c, dto.DeletedResponse{ID: id.String(), Deleted: true})
}

// Error sends an error response, deriving the status code from code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// FieldError sends an error response naming the rejected field
func (h *BaseHandler) FieldError(c *gin.Context, code, message, field string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewFieldErrorResponse(code, message, field, middleware.GetRequestID(c)))
}

// HandleError converts err to an HTTP response. Domain errors keep their
// code through any wrapping; anything else is a 500 carrying the message.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.FieldError(c, code, domainErr.Message, domainErr.Field)
		return
	}

	logger.GinLogger(c).Error("Request failed", zap.Error(err))
	h.Error(c, dto.ErrCodeInternal, err.Error())
}

// BindJSON binds and validates the request body into obj. It writes the
// error response and returns false when binding fails.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		middleware.HandleBindError(c, err)
		return false
	}
	return true
}

// ParseID parses the :id path parameter. It writes a 400 INVALID_ID
// response and returns false when the value is not a UUID.
func (h *BaseHandler) ParseID(c *gin.Context) (uuid.UUID, bool) {
	return h.parseUUIDParam(c, "id")
}

func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.FieldError(c, dto.ErrCodeInvalidID, "Invalid "+name+" format", name)
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated user's id
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := middleware.GetJWTUserID(c)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
