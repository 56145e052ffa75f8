package identity

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud/crudtest"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/auth"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	identity.SetPasswordCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

type mockUserRepository struct {
	crudtest.MockRepository[identity.User]
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

const testSecret = "test-secret-key-that-is-long-enough-32"

type authFixture struct {
	svc       *AuthService
	repo      *mockUserRepository
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		repo:      new(mockUserRepository),
		jwt:       auth.NewJWTService(config.JWTConfig{Secret: testSecret, Expiration: time.Hour, Issuer: "sitinfra-test"}),
		blacklist: auth.NewInMemoryTokenBlacklist(),
	}
	f.svc = NewAuthService(f.repo, f.jwt, f.blacklist, zap.NewNop())
	return f
}

func existingUser(t *testing.T, password string) *identity.User {
	t.Helper()
	u, err := identity.NewUser("awa.fouda@sitinfra.cm", password, "Awa", "Fouda")
	require.NoError(t, err)
	u.Role = identity.RoleManager
	return u
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.repo.On("ExistsBy", ctx, "email", "new.user@sitinfra.cm", (*uuid.UUID)(nil)).Return(false, nil)
	f.repo.On("Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
		return u.PasswordHash != "" && u.PasswordHash != "s3cretpass" && u.VerifyPassword("s3cretpass")
	})).Return(nil)

	resp, err := f.svc.Register(ctx, RegisterRequest{
		Email:            "New.User@SITINFRA.cm",
		Password:         "s3cretpass",
		FirstName:        "new",
		LastName:         "user",
		PhoneCountryCode: "237",
		PhoneNumber:      "699000111",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.user@sitinfra.cm", resp.Email)
	assert.Equal(t, "employee", resp.Role)
	assert.Equal(t, "New User", resp.FullName)
	assert.Equal(t, "+237699000111", resp.Phone)
	assert.True(t, resp.IsActive)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.repo.On("ExistsBy", ctx, "email", "taken@sitinfra.cm", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := f.svc.Register(ctx, RegisterRequest{Email: "taken@sitinfra.cm", Password: "s3cretpass"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_RegisterShortPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.repo.On("ExistsBy", ctx, "email", "a@sitinfra.cm", (*uuid.UUID)(nil)).Return(false, nil)

	_, err := f.svc.Register(ctx, RegisterRequest{Email: "a@sitinfra.cm", Password: "short"})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "password", de.Field)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	loginAt := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return loginAt }

	u := existingUser(t, "correct-horse")
	f.repo.On("FindByEmail", ctx, "awa.fouda@sitinfra.cm").Return(u, nil)
	f.repo.On("Save", ctx, u).Return(nil)

	resp, err := f.svc.Login(ctx, LoginRequest{Email: " AWA.FOUDA@sitinfra.cm", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, u.ID, resp.User.ID)
	require.NotNil(t, resp.User.LastLoginAt)
	assert.Equal(t, loginAt, *resp.User.LastLoginAt)

	claims, err := f.jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "awa.fouda@sitinfra.cm", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture()
		f.repo.On("FindByEmail", ctx, "ghost@sitinfra.cm").Return(nil, shared.ErrNotFound)
		_, err := f.svc.Login(ctx, LoginRequest{Email: "ghost@sitinfra.cm", Password: "whatever1"})
		assertInvalidCredentials(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		u := existingUser(t, "correct-horse")
		f.repo.On("FindByEmail", ctx, u.Email).Return(u, nil)
		_, err := f.svc.Login(ctx, LoginRequest{Email: u.Email, Password: "battery-staple"})
		assertInvalidCredentials(t, err)
	})

	t.Run("inactive account", func(t *testing.T) {
		f := newAuthFixture()
		u := existingUser(t, "correct-horse")
		u.IsActive = false
		f.repo.On("FindByEmail", ctx, u.Email).Return(u, nil)
		_, err := f.svc.Login(ctx, LoginRequest{Email: u.Email, Password: "correct-horse"})
		assertInvalidCredentials(t, err)
	})
}

func assertInvalidCredentials(t *testing.T, err error) {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeInvalidCredentials, de.Code)
	assert.Equal(t, "Invalid email or password", de.Message)
}

func TestAuthService_LoginRepositoryError(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.repo.On("FindByEmail", ctx, "a@sitinfra.cm").Return(nil, errors.New("connection refused"))
	_, err := f.svc.Login(ctx, LoginRequest{Email: "a@sitinfra.cm", Password: "whatever1"})
	assert.EqualError(t, err, "connection refused")
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	token, err := f.jwt.GenerateToken(auth.GenerateTokenInput{UserID: uuid.New(), Role: "employee", Email: "e@sitinfra.cm"})
	require.NoError(t, err)
	claims, err := f.jwt.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, claims))

	revoked, err := f.blacklist.IsRevoked(ctx, claims.ID, claims.UserID, claims.GetIssuedAtTime())
	require.NoError(t, err)
	assert.Equal(t, auth.TokenRevoked, revoked)
}

func TestAuthService_LogoutWithoutClaims(t *testing.T) {
	f := newAuthFixture()
	assert.ErrorIs(t, f.svc.Logout(context.Background(), nil), shared.ErrUnauthorized)
}

func TestAuthService_Me(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	u := existingUser(t, "correct-horse")
	f.repo.On("FindByID", ctx, u.ID).Return(u, nil)

	resp, err := f.svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Awa Fouda", resp.FullName)

	missing := uuid.New()
	f.repo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)
	_, err = f.svc.Me(ctx, missing)
	assert.EqualError(t, err, "User not found")
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	u := existingUser(t, "old-password")
	f.repo.On("FindByID", ctx, u.ID).Return(u, nil)
	f.repo.On("Save", ctx, u).Return(nil)

	err := f.svc.ChangePassword(ctx, u.ID, ChangePasswordRequest{CurrentPassword: "wrong-one", NewPassword: "new-password"})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "currentPassword", de.Field)

	require.NoError(t, f.svc.ChangePassword(ctx, u.ID, ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}))
	assert.True(t, u.VerifyPassword("new-password"))
}

func TestUserService_DeactivateRevokesTokens(t *testing.T) {
	repo := new(mockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewUserService(repo, blacklist, time.Hour, zap.NewNop())
	ctx := context.Background()

	u := existingUser(t, "correct-horse")
	issuedAt := time.Now().Add(-time.Minute)
	repo.On("FindByID", ctx, u.ID).Return(u, nil)
	repo.On("Save", ctx, u).Return(nil)

	inactive := false
	resp, err := svc.Update(ctx, u.ID, UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	revoked, err := blacklist.IsRevoked(ctx, "", u.ID.String(), issuedAt)
	require.NoError(t, err)
	assert.Equal(t, auth.UserRevoked, revoked)
}

func TestUserService_UpdateNameKeepsTokens(t *testing.T) {
	repo := new(mockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewUserService(repo, blacklist, time.Hour, zap.NewNop())
	ctx := context.Background()

	u := existingUser(t, "correct-horse")
	repo.On("FindByID", ctx, u.ID).Return(u, nil)
	repo.On("Save", ctx, u).Return(nil)

	first := "aïcha"
	resp, err := svc.Update(ctx, u.ID, UpdateUserRequest{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Aïcha", resp.FirstName)
	assert.Equal(t, "Fouda", resp.LastName)

	revoked, err := blacklist.IsRevoked(ctx, "", u.ID.String(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, auth.NotRevoked, revoked)
}

func TestUserService_UpdateDuplicateEmail(t *testing.T) {
	repo := new(mockUserRepository)
	svc := NewUserService(repo, nil, time.Hour, zap.NewNop())
	ctx := context.Background()

	u := existingUser(t, "correct-horse")
	repo.On("FindByID", ctx, u.ID).Return(u, nil)
	repo.On("ExistsBy", ctx, "email", "other@sitinfra.cm", &u.ID).Return(true, nil)

	email := "Other@sitinfra.cm"
	_, err := svc.Update(ctx, u.ID, UpdateUserRequest{Email: &email})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestUserService_DeleteRevokesTokens(t *testing.T) {
	repo := new(mockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewUserService(repo, blacklist, time.Hour, zap.NewNop())
	ctx := context.Background()

	id := uuid.New()
	repo.On("Delete", ctx, id).Return(nil)

	require.NoError(t, svc.Delete(ctx, id))
	revoked, err := blacklist.IsRevoked(ctx, "", id.String(), time.Now().Add(-time.Second))
	require.NoError(t, err)
	assert.Equal(t, auth.UserRevoked, revoked)
}
