package asset

import (
	"strings"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
)

// VehicleStatus represents the status of a vehicle
type VehicleStatus string

const (
	VehicleStatusAvailable    VehicleStatus = "available"
	VehicleStatusInUse        VehicleStatus = "in_use"
	VehicleStatusMaintenance  VehicleStatus = "maintenance"
	VehicleStatusOutOfService VehicleStatus = "out_of_service"
)

// FuelType is the fuel a vehicle runs on
type FuelType string

const (
	FuelTypePetrol   FuelType = "petrol"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeElectric FuelType = "electric"
	FuelTypeHybrid   FuelType = "hybrid"
)

// Vehicle is a company vehicle
type Vehicle struct {
	shared.BaseEntity
	PlateNumber     string
	Brand           string
	Model           string
	Year            int
	VIN             string
	FuelType        FuelType
	Mileage         int
	Status          VehicleStatus
	DriverID        *uuid.UUID // employee
	InsuranceExpiry *time.Time
	LastServiceDate *time.Time
	Notes           string
}

// NewVehicle creates an available diesel vehicle
func NewVehicle(plateNumber string) (*Vehicle, error) {
	v := &Vehicle{
		BaseEntity:  shared.NewBaseEntity(),
		PlateNumber: NormalizePlate(plateNumber),
		FuelType:    FuelTypeDiesel,
		Status:      VehicleStatusAvailable,
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// NormalizePlate upper-cases a plate number and collapses inner whitespace
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.Join(strings.Fields(plate), " "))
}

// Validate checks required fields, enumerations and counters
func (v *Vehicle) Validate() error {
	if err := shared.FirstError(
		shared.Required("plateNumber", v.PlateNumber),
		shared.OneOf("status", v.Status,
			VehicleStatusAvailable, VehicleStatusInUse, VehicleStatusMaintenance, VehicleStatusOutOfService),
		shared.OneOf("fuelType", v.FuelType, FuelTypePetrol, FuelTypeDiesel, FuelTypeElectric, FuelTypeHybrid),
	); err != nil {
		return err
	}
	if v.Mileage < 0 {
		return shared.NewValidationError("mileage", "mileage cannot be negative")
	}
	if v.Year != 0 && (v.Year < 1900 || v.Year > time.Now().Year()+1) {
		return shared.NewValidationError("year", "year is out of range")
	}
	return nil
}

// VehicleRepository persists vehicles
type VehicleRepository interface {
	shared.Repository[Vehicle]
}
