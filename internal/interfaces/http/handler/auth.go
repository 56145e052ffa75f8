package handler

import (
	"context"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/auth"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthService is the authentication use case set
type AuthService interface {
	Register(ctx context.Context, req identity.RegisterRequest) (*identity.UserResponse, error)
	Login(ctx context.Context, req identity.LoginRequest) (*identity.LoginResponse, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, userID uuid.UUID) (*identity.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req identity.ChangePasswordRequest) error
}

// MessageResponse is returned by endpoints that have no resource to return
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req identity.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout handles POST /auth/logout. The presented token is revoked until it
// expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageResponse{Message: "Logged out successfully"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword handles PUT /auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}
	var req identity.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageResponse{Message: "Password changed successfully"})
}
