package identity

import (
	"context"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService administers accounts. Write access is restricted to admins by
// the router.
type UserService struct {
	*crud.Service[identity.User, UserResponse]
	repo      identity.UserRepository
	blacklist auth.TokenBlacklist
	tokenTTL  time.Duration
}

// NewUserService creates a new UserService. tokenTTL is the access token
// lifetime; revoking a user's tokens lasts that long.
func NewUserService(repo identity.UserRepository, blacklist auth.TokenBlacklist, tokenTTL time.Duration, logger *zap.Logger) *UserService {
	return &UserService{
		Service:   crud.NewService[identity.User, UserResponse](repo, "User", ToUserResponse, logger),
		repo:      repo,
		blacklist: blacklist,
		tokenTTL:  tokenTTL,
	}
}

// Create adds an account on behalf of an administrator
func (s *UserService) Create(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	u, err := newUser(ctx, s.repo, req)
	if err != nil {
		return nil, err
	}
	resp, err := s.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	s.Logger().Info("User created", zap.String("user_id", u.ID.String()), zap.String("role", string(u.Role)))
	return resp, nil
}

// Update changes the fields present in req. Deactivating an account or
// changing its role or password revokes the tokens it already holds.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	u, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	revoke := false

	if req.Email != nil {
		email := identity.NormalizeEmail(*req.Email)
		if email != u.Email {
			if err := crud.EnsureUnique[identity.User](ctx, s.repo, "email", email, &u.ID, "User", "email"); err != nil {
				return nil, err
			}
		}
		u.Email = email
	}
	if req.Password != nil {
		if err := u.SetPassword(*req.Password); err != nil {
			return nil, err
		}
		revoke = true
	}
	if req.FirstName != nil || req.LastName != nil {
		first, last := u.FirstName, u.LastName
		crud.Set(&first, req.FirstName)
		crud.Set(&last, req.LastName)
		u.SetName(first, last)
	}
	if req.Role != nil && identity.Role(*req.Role) != u.Role {
		u.Role = identity.Role(*req.Role)
		revoke = true
	}
	if req.PhoneCountryCode != nil || req.PhoneNumber != nil {
		code, number := u.Phone.CountryCode, u.Phone.Number
		crud.Set(&code, req.PhoneCountryCode)
		crud.Set(&number, req.PhoneNumber)
		if err := u.SetPhone(code, number); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil && *req.IsActive != u.IsActive {
		u.IsActive = *req.IsActive
		revoke = revoke || !u.IsActive
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}
	u.Touch()
	resp, err := s.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	if revoke {
		s.revokeTokens(ctx, u.ID)
	}
	return resp, nil
}

// Delete removes the account and revokes its tokens
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Service.Delete(ctx, id); err != nil {
		return err
	}
	s.revokeTokens(ctx, id)
	return nil
}

func (s *UserService) revokeTokens(ctx context.Context, userID uuid.UUID) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.RevokeUser(ctx, userID.String(), s.tokenTTL); err != nil {
		s.Logger().Error("Failed to revoke user tokens", zap.String("user_id", userID.String()), zap.Error(err))
		return
	}
	s.Logger().Info("User tokens revoked", zap.String("user_id", userID.String()))
}
