package asset

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
)

// AssignmentStatus represents the status of an equipment assignment
type AssignmentStatus string

const (
	AssignmentStatusActive   AssignmentStatus = "active"
	AssignmentStatusReturned AssignmentStatus = "returned"
)

// EquipmentAssignment records equipment handed to a user
type EquipmentAssignment struct {
	shared.BaseEntity
	EquipmentID    uuid.UUID
	UserID         uuid.UUID
	AssignedAt     time.Time
	ExpectedReturn *time.Time
	ReturnedAt     *time.Time
	Status         AssignmentStatus
	Notes          string
}

// NewEquipmentAssignment creates an active assignment starting now
func NewEquipmentAssignment(equipmentID, userID uuid.UUID) (*EquipmentAssignment, error) {
	a := &EquipmentAssignment{
		BaseEntity:  shared.NewBaseEntity(),
		EquipmentID: equipmentID,
		UserID:      userID,
		AssignedAt:  shared.Now(),
		Status:      AssignmentStatusActive,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks references, dates and status
func (a *EquipmentAssignment) Validate() error {
	if a.EquipmentID == uuid.Nil {
		return shared.NewValidationError("equipmentId", "equipmentId is required")
	}
	if a.UserID == uuid.Nil {
		return shared.NewValidationError("userId", "userId is required")
	}
	if a.ExpectedReturn != nil && a.ExpectedReturn.Before(a.AssignedAt) {
		return shared.NewValidationError("expectedReturn", "expectedReturn must be on or after assignedAt")
	}
	return shared.OneOf("status", a.Status, AssignmentStatusActive, AssignmentStatusReturned)
}

// IsActive reports whether the equipment is still out
func (a *EquipmentAssignment) IsActive() bool {
	return a.Status == AssignmentStatusActive
}

// Return marks the equipment as given back at now
func (a *EquipmentAssignment) Return(now time.Time) error {
	if !a.IsActive() {
		return shared.NewDomainError(shared.CodeInvalidState, "Equipment assignment has already been returned")
	}
	a.Status = AssignmentStatusReturned
	a.ReturnedAt = &now
	a.Touch()
	return nil
}

// EquipmentAssignmentRepository persists equipment assignments
type EquipmentAssignmentRepository interface {
	shared.Repository[EquipmentAssignment]
}
