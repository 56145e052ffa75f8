package asset

import (
	"context"
	"errors"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/asset"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errActiveAssignment = shared.NewDomainError(shared.CodeAlreadyExists, "Equipment already has an active assignment")

// AssignmentService hands equipment out to users and takes it back
type AssignmentService struct {
	*crud.Service[asset.EquipmentAssignment, AssignmentResponse]
	repo          asset.EquipmentAssignmentRepository
	equipmentRepo asset.EquipmentRepository
	userRepo      identity.UserRepository
	now           func() time.Time
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	repo asset.EquipmentAssignmentRepository,
	equipmentRepo asset.EquipmentRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		Service:       crud.NewService[asset.EquipmentAssignment, AssignmentResponse](repo, "Equipment assignment", ToAssignmentResponse, logger),
		repo:          repo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		now:           shared.Now,
	}
}

// Create assigns equipment to a user. A piece of equipment has at most one
// active assignment.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*AssignmentResponse, error) {
	if err := crud.EnsureExists[asset.Equipment](ctx, s.equipmentRepo, req.EquipmentID, "Equipment", "equipmentId"); err != nil {
		return nil, err
	}
	if err := crud.EnsureExists[identity.User](ctx, s.userRepo, req.UserID, "User", "userId"); err != nil {
		return nil, err
	}
	if err := s.ensureNoActiveAssignment(ctx, req.EquipmentID); err != nil {
		return nil, err
	}

	a, err := asset.NewEquipmentAssignment(req.EquipmentID, req.UserID)
	if err != nil {
		return nil, err
	}
	if d := req.AssignedAt.Ptr(); d != nil {
		a.AssignedAt = *d
	}
	a.ExpectedReturn = req.ExpectedReturn.Ptr()
	a.Notes = req.Notes
	if err := a.Validate(); err != nil {
		return nil, err
	}

	// the partial unique index catches a concurrent assignment that passed the check above
	resp, err := s.Save(ctx, a)
	if errors.Is(err, shared.ErrAlreadyExists) {
		return nil, errActiveAssignment
	}
	if err != nil {
		return nil, err
	}
	s.Logger().Info("Equipment assigned",
		zap.String("equipment_id", a.EquipmentID.String()),
		zap.String("user_id", a.UserID.String()),
	)
	return resp, nil
}

func (s *AssignmentService) ensureNoActiveAssignment(ctx context.Context, equipmentID uuid.UUID) error {
	filter := shared.DefaultFilter().
		With("equipmentId", equipmentID).
		With("status", string(asset.AssignmentStatusActive))
	n, err := s.repo.Count(ctx, filter)
	if err != nil {
		return err
	}
	if n > 0 {
		return errActiveAssignment
	}
	return nil
}

// Update changes the fields present in req
func (s *AssignmentService) Update(ctx context.Context, id uuid.UUID, req UpdateAssignmentRequest) (*AssignmentResponse, error) {
	a, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil && *req.UserID != a.UserID {
		if err := crud.EnsureExists[identity.User](ctx, s.userRepo, *req.UserID, "User", "userId"); err != nil {
			return nil, err
		}
		a.UserID = *req.UserID
	}
	crud.SetDate(&a.ExpectedReturn, req.ExpectedReturn)
	crud.Set(&a.Notes, req.Notes)

	if err := a.Validate(); err != nil {
		return nil, err
	}
	a.Touch()
	return s.Save(ctx, a)
}

// Return records that the equipment came back
func (s *AssignmentService) Return(ctx context.Context, id uuid.UUID) (*AssignmentResponse, error) {
	a, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Return(s.now()); err != nil {
		return nil, err
	}
	resp, err := s.Save(ctx, a)
	if err != nil {
		return nil, err
	}
	s.Logger().Info("Equipment returned", zap.String("assignment_id", a.ID.String()))
	return resp, nil
}
