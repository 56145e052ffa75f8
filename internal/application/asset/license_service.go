package asset

import (
	"context"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/asset"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LicenseService manages software licenses
type LicenseService struct {
	*crud.Service[asset.SoftwareLicense, LicenseResponse]
	userRepo identity.UserRepository
}

// NewLicenseService creates a new LicenseService
func NewLicenseService(repo asset.SoftwareLicenseRepository, userRepo identity.UserRepository, logger *zap.Logger) *LicenseService {
	return &LicenseService{
		Service:  crud.NewService[asset.SoftwareLicense, LicenseResponse](repo, "Software license", ToLicenseResponse, logger),
		userRepo: userRepo,
	}
}

// Create records a license. The assignee, when given, must be an existing user.
func (s *LicenseService) Create(ctx context.Context, req CreateLicenseRequest) (*LicenseResponse, error) {
	if err := crud.EnsureOptionalExists[identity.User](ctx, s.userRepo, req.AssignedTo, "User", "assignedTo"); err != nil {
		return nil, err
	}

	l, err := asset.NewSoftwareLicense(req.SoftwareName)
	if err != nil {
		return nil, err
	}
	l.Vendor = strings.TrimSpace(req.Vendor)
	l.LicenseKey = strings.TrimSpace(req.LicenseKey)
	if req.LicenseType != "" {
		l.LicenseType = asset.LicenseType(req.LicenseType)
	}
	crud.Set(&l.Seats, req.Seats)
	l.PurchaseDate = req.PurchaseDate.Ptr()
	l.ExpiryDate = req.ExpiryDate.Ptr()
	crud.Set(&l.Cost, req.Cost)
	l.AssignedTo = req.AssignedTo
	if req.Status != "" {
		l.Status = asset.LicenseStatus(req.Status)
	}
	l.Notes = req.Notes
	if err := l.Validate(); err != nil {
		return nil, err
	}

	return s.Save(ctx, l)
}

// Update changes the fields present in req
func (s *LicenseService) Update(ctx context.Context, id uuid.UUID, req UpdateLicenseRequest) (*LicenseResponse, error) {
	l, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AssignedTo != nil {
		if err := crud.EnsureOptionalExists[identity.User](ctx, s.userRepo, req.AssignedTo, "User", "assignedTo"); err != nil {
			return nil, err
		}
		l.AssignedTo = req.AssignedTo
	}
	crud.SetTrimmed(&l.SoftwareName, req.SoftwareName)
	crud.SetTrimmed(&l.Vendor, req.Vendor)
	crud.SetTrimmed(&l.LicenseKey, req.LicenseKey)
	crud.SetEnum(&l.LicenseType, req.LicenseType)
	crud.Set(&l.Seats, req.Seats)
	crud.SetDate(&l.PurchaseDate, req.PurchaseDate)
	crud.SetDate(&l.ExpiryDate, req.ExpiryDate)
	crud.Set(&l.Cost, req.Cost)
	crud.SetEnum(&l.Status, req.Status)
	crud.Set(&l.Notes, req.Notes)

	if err := l.Validate(); err != nil {
		return nil, err
	}
	l.Touch()
	return s.Save(ctx, l)
}
