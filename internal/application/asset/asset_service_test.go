package asset

import (
	"context"
	"testing"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud/crudtest"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/asset"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/personnel"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockUserRepository adds FindByEmail to the generic repository mock
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

func date(t *testing.T, s string) *valueobject.Date {
	t.Helper()
	d, err := valueobject.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestEquipmentService_CreateDuplicateSerial(t *testing.T) {
	repo := new(crudtest.MockRepository[asset.Equipment])
	svc := NewEquipmentService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("ExistsBy", ctx, "serial_number", "SN-77", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := svc.Create(ctx, CreateEquipmentRequest{Name: "Théodolite", SerialNumber: " SN-77 "})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestEquipmentService_CreateWithoutSerialSkipsUniqueness(t *testing.T) {
	repo := new(crudtest.MockRepository[asset.Equipment])
	svc := NewEquipmentService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("Save", ctx, mock.AnythingOfType("*asset.Equipment")).Return(nil)

	resp, err := svc.Create(ctx, CreateEquipmentRequest{Name: "Station totale", Location: "Dépôt Bonabéri"})
	require.NoError(t, err)
	assert.Equal(t, "available", resp.Status)
	assert.Equal(t, "Dépôt Bonabéri", resp.Location)
	repo.AssertNotCalled(t, "ExistsBy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEquipmentService_UpdateSameSerialSkipsCheck(t *testing.T) {
	repo := new(crudtest.MockRepository[asset.Equipment])
	svc := NewEquipmentService(repo, zap.NewNop())
	ctx := context.Background()

	e, err := asset.NewEquipment("GPS RTK")
	require.NoError(t, err)
	e.SerialNumber = "RTK-1"
	repo.On("FindByID", ctx, e.ID).Return(e, nil)
	repo.On("Save", ctx, e).Return(nil)

	resp, err := svc.Update(ctx, e.ID, UpdateEquipmentRequest{SerialNumber: strPtr("RTK-1"), Status: strPtr("maintenance")})
	require.NoError(t, err)
	assert.Equal(t, "maintenance", resp.Status)
	repo.AssertNotCalled(t, "ExistsBy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVehicleService_CreateChecksDriver(t *testing.T) {
	repo := new(crudtest.MockRepository[asset.Vehicle])
	employees := new(crudtest.MockRepository[personnel.Employee])
	svc := NewVehicleService(repo, employees, zap.NewNop())
	ctx := context.Background()

	driver := uuid.New()
	repo.On("ExistsBy", ctx, "plate_number", "LT 123 AB", (*uuid.UUID)(nil)).Return(false, nil)
	employees.On("ExistsByID", ctx, driver).Return(false, nil)

	_, err := svc.Create(ctx, CreateVehicleRequest{PlateNumber: "lt  123 ab", DriverID: &driver})
	require.Error(t, err)
	assert.Equal(t, "Employee not found", err.Error())
}

func TestVehicleService_Create(t *testing.T) {
	repo := new(crudtest.MockRepository[asset.Vehicle])
	employees := new(crudtest.MockRepository[personnel.Employee])
	svc := NewVehicleService(repo, employees, zap.NewNop())
	ctx := context.Background()

	repo.On("ExistsBy", ctx, "plate_number", "CE 456 CD", (*uuid.UUID)(nil)).Return(false, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*asset.Vehicle")).Return(nil)

	resp, err := svc.Create(ctx, CreateVehicleRequest{PlateNumber: "ce 456 cd", Brand: "Toyota", Year: 2021, VIN: "jtfaa"})
	require.NoError(t, err)
	assert.Equal(t, "CE 456 CD", resp.PlateNumber)
	assert.Equal(t, "diesel", resp.FuelType)
	assert.Equal(t, "JTFAA", resp.VIN)
}

type assignmentFixture struct {
	svc         *AssignmentService
	repo        *crudtest.MockRepository[asset.EquipmentAssignment]
	equipment   *crudtest.MockRepository[asset.Equipment]
	users       *mockUserRepository
	equipmentID uuid.UUID
	userID      uuid.UUID
}

func newAssignmentFixture() *assignmentFixture {
	f := &assignmentFixture{
		repo:        new(crudtest.MockRepository[asset.EquipmentAssignment]),
		equipment:   new(crudtest.MockRepository[asset.Equipment]),
		users:       new(mockUserRepository),
		equipmentID: uuid.New(),
		userID:      uuid.New(),
	}
	f.svc = NewAssignmentService(f.repo, f.equipment, f.users, zap.NewNop())
	return f
}

func activeFor(id uuid.UUID) any {
	return mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["equipmentId"] == id && f.Filters["status"] == "active"
	})
}

func TestAssignmentService_Create(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	f.equipment.On("ExistsByID", ctx, f.equipmentID).Return(true, nil)
	f.users.On("ExistsByID", ctx, f.userID).Return(true, nil)
	f.repo.On("Count", ctx, activeFor(f.equipmentID)).Return(int64(0), nil)
	f.repo.On("Save", ctx, mock.AnythingOfType("*asset.EquipmentAssignment")).Return(nil)

	resp, err := f.svc.Create(ctx, CreateAssignmentRequest{
		EquipmentID:    f.equipmentID,
		UserID:         f.userID,
		AssignedAt:     date(t, "2026-03-01"),
		ExpectedReturn: date(t, "2026-03-15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	assert.Nil(t, resp.ReturnedAt)
}

func TestAssignmentService_CreateRejectsSecondActive(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	f.equipment.On("ExistsByID", ctx, f.equipmentID).Return(true, nil)
	f.users.On("ExistsByID", ctx, f.userID).Return(true, nil)
	f.repo.On("Count", ctx, activeFor(f.equipmentID)).Return(int64(1), nil)

	_, err := f.svc.Create(ctx, CreateAssignmentRequest{EquipmentID: f.equipmentID, UserID: f.userID})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAssignmentService_CreateLosesRaceToConcurrentAssignment(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	f.equipment.On("ExistsByID", ctx, f.equipmentID).Return(true, nil)
	f.users.On("ExistsByID", ctx, f.userID).Return(true, nil)
	f.repo.On("Count", ctx, activeFor(f.equipmentID)).Return(int64(0), nil)
	f.repo.On("Save", ctx, mock.AnythingOfType("*asset.EquipmentAssignment")).Return(shared.ErrAlreadyExists)

	_, err := f.svc.Create(ctx, CreateAssignmentRequest{EquipmentID: f.equipmentID, UserID: f.userID})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.EqualError(t, err, "Equipment already has an active assignment")
}

func TestAssignmentService_CreateChecksReferences(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	f.equipment.On("ExistsByID", ctx, f.equipmentID).Return(false, nil)
	_, err := f.svc.Create(ctx, CreateAssignmentRequest{EquipmentID: f.equipmentID, UserID: f.userID})
	assert.EqualError(t, err, "Equipment not found")

	g := newAssignmentFixture()
	g.equipment.On("ExistsByID", ctx, g.equipmentID).Return(true, nil)
	g.users.On("ExistsByID", ctx, g.userID).Return(false, nil)
	_, err = g.svc.Create(ctx, CreateAssignmentRequest{EquipmentID: g.equipmentID, UserID: g.userID})
	assert.EqualError(t, err, "User not found")
}

func TestAssignmentService_Return(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()
	returnedAt := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return returnedAt }

	a, err := asset.NewEquipmentAssignment(f.equipmentID, f.userID)
	require.NoError(t, err)
	f.repo.On("FindByID", ctx, a.ID).Return(a, nil)
	f.repo.On("Save", ctx, a).Return(nil).Once()

	resp, err := f.svc.Return(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "returned", resp.Status)
	require.NotNil(t, resp.ReturnedAt)
	assert.Equal(t, returnedAt, *resp.ReturnedAt)

	_, err = f.svc.Return(ctx, a.ID)
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeInvalidState, de.Code)
	f.repo.AssertExpectations(t)
}

func TestLicenseService_CreateValidatesDates(t *testing.T) {
	repo := new(crudtest.MockRepository[asset.SoftwareLicense])
	svc := NewLicenseService(repo, new(mockUserRepository), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateLicenseRequest{
		SoftwareName: "AutoCAD Civil 3D",
		PurchaseDate: date(t, "2026-01-01"),
		ExpiryDate:   date(t, "2025-12-31"),
	})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "expiryDate", de.Field)
}

func TestLicenseService_CreateDefaultsAndAssignee(t *testing.T) {
	repo := new(crudtest.MockRepository[asset.SoftwareLicense])
	users := new(mockUserRepository)
	svc := NewLicenseService(repo, users, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New()
	users.On("ExistsByID", ctx, userID).Return(true, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*asset.SoftwareLicense")).Return(nil)

	resp, err := svc.Create(ctx, CreateLicenseRequest{SoftwareName: "QGIS", AssignedTo: &userID})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Seats)
	assert.Equal(t, "subscription", resp.LicenseType)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, &userID, resp.AssignedTo)
}
