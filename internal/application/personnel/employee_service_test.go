package personnel

import (
	"context"
	"testing"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud/crudtest"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/personnel"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

func strPtr(s string) *string { return &s }

func newService() (*EmployeeService, *crudtest.MockRepository[personnel.Employee], *mockUserRepository) {
	repo := new(crudtest.MockRepository[personnel.Employee])
	users := new(mockUserRepository)
	return NewEmployeeService(repo, users, zap.NewNop()), repo, users
}

func TestEmployeeService_Create(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	salary := decimal.RequireFromString("450000")
	repo.On("ExistsBy", ctx, "email", "marie.ngo@sitinfra.cm", (*uuid.UUID)(nil)).Return(false, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*personnel.Employee")).Return(nil)

	resp, err := svc.Create(ctx, CreateEmployeeRequest{
		FirstName:        "marie",
		LastName:         "NGO",
		Email:            " Marie.Ngo@SITINFRA.cm ",
		PhoneCountryCode: "+237",
		PhoneNumber:      "699 11 22 33",
		Department:       "Topographie",
		Salary:           &salary,
	})
	require.NoError(t, err)
	assert.Equal(t, "Marie", resp.FirstName)
	assert.Equal(t, "Ngo", resp.LastName)
	assert.Equal(t, "marie.ngo@sitinfra.cm", resp.Email)
	assert.Equal(t, "+237699112233", resp.Phone)
	assert.Equal(t, "237", resp.PhoneCountryCode)
	assert.Equal(t, "699112233", resp.PhoneNumber)
	assert.Equal(t, "permanent", resp.ContractType)
	assert.Equal(t, "active", resp.Status)
	assert.True(t, salary.Equal(resp.Salary))
}

func TestEmployeeService_CreateWithoutEmailSkipsUniqueness(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	repo.On("Save", ctx, mock.AnythingOfType("*personnel.Employee")).Return(nil)

	resp, err := svc.Create(ctx, CreateEmployeeRequest{FirstName: "Paul", LastName: "Biya"})
	require.NoError(t, err)
	assert.Empty(t, resp.Email)
	assert.Empty(t, resp.Phone)
	repo.AssertNotCalled(t, "ExistsBy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEmployeeService_CreateDuplicateEmail(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	repo.On("ExistsBy", ctx, "email", "dup@sitinfra.cm", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := svc.Create(ctx, CreateEmployeeRequest{FirstName: "A", LastName: "B", Email: "dup@sitinfra.cm"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEmployeeService_CreateUnknownUser(t *testing.T) {
	svc, _, users := newService()
	ctx := context.Background()

	userID := uuid.New()
	users.On("ExistsByID", ctx, userID).Return(false, nil)

	_, err := svc.Create(ctx, CreateEmployeeRequest{FirstName: "A", LastName: "B", UserID: &userID})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "User not found", de.Message)
	assert.Equal(t, "userId", de.Field)
}

func TestEmployeeService_CreateInvalidPhone(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{FirstName: "A", LastName: "B", PhoneNumber: "12"})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "phoneNumber", de.Field)
}

func TestEmployeeService_UpdatePhoneKeepsCountryCode(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	e, err := personnel.NewEmployee("Jean", "Mbarga")
	require.NoError(t, err)
	require.NoError(t, e.SetPhone("237", "677000000"))
	repo.On("FindByID", ctx, e.ID).Return(e, nil)
	repo.On("Save", ctx, e).Return(nil)

	resp, err := svc.Update(ctx, e.ID, UpdateEmployeeRequest{PhoneNumber: strPtr("655 12 34 56"), LastName: strPtr("mbarga essomba")})
	require.NoError(t, err)
	assert.Equal(t, "+237655123456", resp.Phone)
	assert.Equal(t, "Jean", resp.FirstName)
	assert.Equal(t, "Mbarga Essomba", resp.LastName)
}

func TestEmployeeService_UpdateNotFound(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	id := uuid.New()
	repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := svc.Update(ctx, id, UpdateEmployeeRequest{Status: strPtr("on_leave")})
	require.Error(t, err)
	assert.Equal(t, "Employee not found", err.Error())
}
