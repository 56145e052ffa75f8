// Package asset implements the equipment, vehicle, assignment and software
// license use cases.
package asset

import (
	"context"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/asset"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EquipmentService manages equipment
type EquipmentService struct {
	*crud.Service[asset.Equipment, EquipmentResponse]
	repo asset.EquipmentRepository
}

// NewEquipmentService creates a new EquipmentService
func NewEquipmentService(repo asset.EquipmentRepository, logger *zap.Logger) *EquipmentService {
	return &EquipmentService{
		Service: crud.NewService[asset.Equipment, EquipmentResponse](repo, "Equipment", ToEquipmentResponse, logger),
		repo:    repo,
	}
}

// Create registers equipment. Serial numbers are unique when present.
func (s *EquipmentService) Create(ctx context.Context, req CreateEquipmentRequest) (*EquipmentResponse, error) {
	serial := strings.TrimSpace(req.SerialNumber)
	if err := crud.EnsureUnique[asset.Equipment](ctx, s.repo, "serial_number", serial, nil, "Equipment", "serialNumber"); err != nil {
		return nil, err
	}

	e, err := asset.NewEquipment(req.Name)
	if err != nil {
		return nil, err
	}
	e.SerialNumber = serial
	e.Category = strings.TrimSpace(req.Category)
	e.Brand = strings.TrimSpace(req.Brand)
	e.Model = strings.TrimSpace(req.Model)
	e.Location = strings.TrimSpace(req.Location)
	e.PurchaseDate = req.PurchaseDate.Ptr()
	crud.Set(&e.PurchasePrice, req.PurchasePrice)
	e.WarrantyExpiry = req.WarrantyExpiry.Ptr()
	if req.Status != "" {
		e.Status = asset.EquipmentStatus(req.Status)
	}
	e.Notes = req.Notes
	if err := e.Validate(); err != nil {
		return nil, err
	}

	return s.Save(ctx, e)
}

// Update changes the fields present in req
func (s *EquipmentService) Update(ctx context.Context, id uuid.UUID, req UpdateEquipmentRequest) (*EquipmentResponse, error) {
	e, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SerialNumber != nil {
		serial := strings.TrimSpace(*req.SerialNumber)
		if serial != e.SerialNumber {
			if err := crud.EnsureUnique[asset.Equipment](ctx, s.repo, "serial_number", serial, &e.ID, "Equipment", "serialNumber"); err != nil {
				return nil, err
			}
		}
		e.SerialNumber = serial
	}
	crud.SetTrimmed(&e.Name, req.Name)
	crud.SetTrimmed(&e.Category, req.Category)
	crud.SetTrimmed(&e.Brand, req.Brand)
	crud.SetTrimmed(&e.Model, req.Model)
	crud.SetTrimmed(&e.Location, req.Location)
	crud.SetDate(&e.PurchaseDate, req.PurchaseDate)
	crud.Set(&e.PurchasePrice, req.PurchasePrice)
	crud.SetDate(&e.WarrantyExpiry, req.WarrantyExpiry)
	crud.SetEnum(&e.Status, req.Status)
	crud.Set(&e.Notes, req.Notes)

	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.Touch()
	return s.Save(ctx, e)
}
