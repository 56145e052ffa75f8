package handler

import (
	"context"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/auth"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// mockCRUDService implements CRUDService for any resource
type mockCRUDService[R any, C any, U any] struct {
	mock.Mock
}

func (m *mockCRUDService[R, C, U]) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[R], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[R]), args.Error(1)
}

func (m *mockCRUDService[R, C, U]) GetByID(ctx context.Context, id uuid.UUID) (*R, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*R), args.Error(1)
}

func (m *mockCRUDService[R, C, U]) Create(ctx context.Context, req C) (*R, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*R), args.Error(1)
}

func (m *mockCRUDService[R, C, U]) Update(ctx context.Context, id uuid.UUID, req U) (*R, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*R), args.Error(1)
}

func (m *mockCRUDService[R, C, U]) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockAuthService implements AuthService
type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req identity.RegisterRequest) (*identity.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserResponse), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req identity.LoginRequest) (*identity.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.LoginResponse), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *mockAuthService) Me(ctx context.Context, userID uuid.UUID) (*identity.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserResponse), args.Error(1)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req identity.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}
