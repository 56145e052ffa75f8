package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/auth"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// setJWTContext simulates an authenticated request without a real token
func setJWTContext(claims *auth.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.JWTClaimsKey, claims)
			c.Set(middleware.JWTUserIDKey, claims.UserID)
			c.Set(middleware.JWTRoleKey, claims.Role)
		}
		c.Next()
	}
}

func newAuthRouter(svc AuthService, claims *auth.Claims) *gin.Engine {
	h := NewAuthHandler(svc)
	r := gin.New()
	r.Use(setJWTContext(claims))
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", h.Me)
	r.PUT("/auth/password", h.ChangePassword)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Register", mock.Anything, mock.MatchedBy(func(req identity.RegisterRequest) bool {
			return req.Email == "awa@sitinfra.cm" && req.Role == "manager"
		})).Return(&identity.UserResponse{ID: uuid.New(), Email: "awa@sitinfra.cm"}, nil)

		w := doJSON(newAuthRouter(svc, nil), http.MethodPost, "/auth/register", map[string]any{
			"email": "awa@sitinfra.cm", "password": "s3cretpass", "firstName": "Awa", "role": "manager",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "awa@sitinfra.cm")
	})

	t.Run("short password", func(t *testing.T) {
		svc := new(mockAuthService)

		w := doJSON(newAuthRouter(svc, nil), http.MethodPost, "/auth/register", map[string]any{
			"email": "awa@sitinfra.cm", "password": "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "password", resp.Field)
		assert.Equal(t, "password must be at least 8 characters", resp.Error)
	})

	t.Run("email taken", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(nil, shared.NewAlreadyExistsError("User", "email", "awa@sitinfra.cm"))

		w := doJSON(newAuthRouter(svc, nil), http.MethodPost, "/auth/register", map[string]any{
			"email": "awa@sitinfra.cm", "password": "s3cretpass",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Login", mock.Anything, identity.LoginRequest{Email: "awa@sitinfra.cm", Password: "s3cretpass"}).
			Return(&identity.LoginResponse{Token: "jwt", TokenType: "Bearer", ExpiresAt: time.Now().Add(24 * time.Hour)}, nil)

		w := doJSON(newAuthRouter(svc, nil), http.MethodPost, "/auth/login", map[string]any{
			"email": "awa@sitinfra.cm", "password": "s3cretpass",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tokenType":"Bearer"`)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Login", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError(shared.CodeInvalidCredentials, "Invalid email or password"))

		w := doJSON(newAuthRouter(svc, nil), http.MethodPost, "/auth/login", map[string]any{
			"email": "awa@sitinfra.cm", "password": "wrong-pass",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidCredentials, decodeError(t, w).Code)
	})

	t.Run("empty body", func(t *testing.T) {
		svc := new(mockAuthService)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newAuthRouter(svc, nil).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Request body is required", decodeError(t, w).Error)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	claims := &auth.Claims{UserID: uuid.NewString(), Role: "employee"}
	claims.ID = uuid.NewString()

	t.Run("revokes presented token", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Logout", mock.Anything, claims).Return(nil)

		w := doJSON(newAuthRouter(svc, claims), http.MethodPost, "/auth/logout", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("no claims", func(t *testing.T) {
		svc := new(mockAuthService)

		w := doJSON(newAuthRouter(svc, nil), http.MethodPost, "/auth/logout", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})

	t.Run("blacklist failure", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Logout", mock.Anything, claims).Return(errors.New("redis: connection refused"))

		w := doJSON(newAuthRouter(svc, claims), http.MethodPost, "/auth/logout", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	userID := uuid.New()
	claims := &auth.Claims{UserID: userID.String(), Role: "admin"}

	svc := new(mockAuthService)
	svc.On("Me", mock.Anything, userID).Return(&identity.UserResponse{ID: userID, Email: "admin@sitinfra.cm"}, nil)

	w := doJSON(newAuthRouter(svc, claims), http.MethodGet, "/auth/me", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@sitinfra.cm")
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	userID := uuid.New()
	claims := &auth.Claims{UserID: userID.String(), Role: "employee"}

	svc := new(mockAuthService)
	svc.On("ChangePassword", mock.Anything, userID, identity.ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	}).Return(nil)

	w := doJSON(newAuthRouter(svc, claims), http.MethodPut, "/auth/password", map[string]any{
		"currentPassword": "old-password", "newPassword": "new-password",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Password changed successfully")
	svc.AssertExpectations(t)
}
