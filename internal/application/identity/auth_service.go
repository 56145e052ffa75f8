// Package identity implements sign-in, registration and user administration.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errInvalidCredentials is returned for unknown emails, wrong passwords and
// inactive accounts alike
var errInvalidCredentials = shared.NewDomainError(shared.CodeInvalidCredentials, "Invalid email or password")

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
		now:        time.Now,
	}
}

// Register creates an account. An email already in use is a conflict.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	u, err := newUser(ctx, s.userRepo, req)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", u.ID.String()),
		zap.String("role", string(u.Role)),
	)
	resp := ToUserResponse(u)
	return &resp, nil
}

// Login verifies the credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := identity.NormalizeEmail(req.Email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email", zap.String("email", email))
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		s.logger.Warn("Login attempt for inactive account", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID: user.ID,
		Role:   string(user.Role),
		Email:  user.Email,
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, err
	}

	user.RecordLogin(s.now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// the token is valid either way
		s.logger.Error("Failed to record login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return &LoginResponse{
		Token:     token.AccessToken,
		TokenType: token.TokenType,
		ExpiresAt: token.ExpiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// Logout revokes the presented token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return shared.ErrUnauthorized
	}
	if err := s.blacklist.RevokeToken(ctx, claims.ID, claims.GetExpiresAtTime()); err != nil {
		s.logger.Error("Failed to revoke token", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Me returns the signed-in user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("User")
		}
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword replaces the signed-in user's password after checking the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError("User")
		}
		return err
	}
	if !user.VerifyPassword(req.CurrentPassword) {
		return shared.NewValidationError("currentPassword", "Current password is incorrect")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// newUser validates req, checks the email is free and builds the account
func newUser(ctx context.Context, repo identity.UserRepository, req RegisterRequest) (*identity.User, error) {
	email := identity.NormalizeEmail(req.Email)
	exists, err := repo.ExistsBy(ctx, "email", email, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewAlreadyExistsError("User", "email", email)
	}

	u, err := identity.NewUser(email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	if req.Role != "" {
		u.Role = identity.Role(req.Role)
	}
	if err := u.SetPhone(req.PhoneCountryCode, req.PhoneNumber); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}
