package asset

import (
	"context"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/asset"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/personnel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VehicleService manages the vehicle fleet
type VehicleService struct {
	*crud.Service[asset.Vehicle, VehicleResponse]
	repo         asset.VehicleRepository
	employeeRepo personnel.EmployeeRepository
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(repo asset.VehicleRepository, employeeRepo personnel.EmployeeRepository, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		Service:      crud.NewService[asset.Vehicle, VehicleResponse](repo, "Vehicle", ToVehicleResponse, logger),
		repo:         repo,
		employeeRepo: employeeRepo,
	}
}

// Create registers a vehicle. Plate numbers are unique and the driver, when
// given, must be an existing employee.
func (s *VehicleService) Create(ctx context.Context, req CreateVehicleRequest) (*VehicleResponse, error) {
	plate := asset.NormalizePlate(req.PlateNumber)
	if err := crud.EnsureUnique[asset.Vehicle](ctx, s.repo, "plate_number", plate, nil, "Vehicle", "plateNumber"); err != nil {
		return nil, err
	}
	if err := crud.EnsureOptionalExists[personnel.Employee](ctx, s.employeeRepo, req.DriverID, "Employee", "driverId"); err != nil {
		return nil, err
	}

	v, err := asset.NewVehicle(plate)
	if err != nil {
		return nil, err
	}
	v.Brand = strings.TrimSpace(req.Brand)
	v.Model = strings.TrimSpace(req.Model)
	v.Year = req.Year
	v.VIN = strings.ToUpper(strings.TrimSpace(req.VIN))
	if req.FuelType != "" {
		v.FuelType = asset.FuelType(req.FuelType)
	}
	v.Mileage = req.Mileage
	if req.Status != "" {
		v.Status = asset.VehicleStatus(req.Status)
	}
	v.DriverID = req.DriverID
	v.InsuranceExpiry = req.InsuranceExpiry.Ptr()
	v.LastServiceDate = req.LastServiceDate.Ptr()
	v.Notes = req.Notes
	if err := v.Validate(); err != nil {
		return nil, err
	}

	return s.Save(ctx, v)
}

// Update changes the fields present in req
func (s *VehicleService) Update(ctx context.Context, id uuid.UUID, req UpdateVehicleRequest) (*VehicleResponse, error) {
	v, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PlateNumber != nil {
		plate := asset.NormalizePlate(*req.PlateNumber)
		if plate != v.PlateNumber {
			if err := crud.EnsureUnique[asset.Vehicle](ctx, s.repo, "plate_number", plate, &v.ID, "Vehicle", "plateNumber"); err != nil {
				return nil, err
			}
		}
		v.PlateNumber = plate
	}
	if req.DriverID != nil {
		if err := crud.EnsureOptionalExists[personnel.Employee](ctx, s.employeeRepo, req.DriverID, "Employee", "driverId"); err != nil {
			return nil, err
		}
		v.DriverID = req.DriverID
	}
	crud.SetTrimmed(&v.Brand, req.Brand)
	crud.SetTrimmed(&v.Model, req.Model)
	crud.Set(&v.Year, req.Year)
	if req.VIN != nil {
		v.VIN = strings.ToUpper(strings.TrimSpace(*req.VIN))
	}
	crud.SetEnum(&v.FuelType, req.FuelType)
	crud.Set(&v.Mileage, req.Mileage)
	crud.SetEnum(&v.Status, req.Status)
	crud.SetDate(&v.InsuranceExpiry, req.InsuranceExpiry)
	crud.SetDate(&v.LastServiceDate, req.LastServiceDate)
	crud.Set(&v.Notes, req.Notes)

	if err := v.Validate(); err != nil {
		return nil, err
	}
	v.Touch()
	return s.Save(ctx, v)
}
