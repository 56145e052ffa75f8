package asset

import (
	"strings"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EquipmentStatus represents the status of a piece of equipment
type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "available"
	EquipmentStatusAssigned    EquipmentStatus = "assigned"
	EquipmentStatusMaintenance EquipmentStatus = "maintenance"
	EquipmentStatusRetired     EquipmentStatus = "retired"
)

// Equipment is a tracked piece of hardware or tooling
type Equipment struct {
	shared.BaseEntity
	Name           string
	SerialNumber   string
	Category       string
	Brand          string
	Model          string
	Location       string
	PurchaseDate   *time.Time
	PurchasePrice  decimal.Decimal
	WarrantyExpiry *time.Time
	Status         EquipmentStatus
	Notes          string
}

// NewEquipment creates available equipment
func NewEquipment(name string) (*Equipment, error) {
	e := &Equipment{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          strings.TrimSpace(name),
		PurchasePrice: decimal.Zero,
		Status:        EquipmentStatusAvailable,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks required fields and enumerations
func (e *Equipment) Validate() error {
	if err := shared.FirstError(
		shared.Required("name", e.Name),
		shared.OneOf("status", e.Status,
			EquipmentStatusAvailable, EquipmentStatusAssigned, EquipmentStatusMaintenance, EquipmentStatusRetired),
	); err != nil {
		return err
	}
	if e.PurchasePrice.IsNegative() {
		return shared.NewValidationError("purchasePrice", "purchasePrice cannot be negative")
	}
	return nil
}

// EquipmentRepository persists equipment
type EquipmentRepository interface {
	shared.Repository[Equipment]
}
