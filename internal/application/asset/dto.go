package asset

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/asset"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EquipmentResponse is a piece of equipment in API responses
type EquipmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	SerialNumber   string          `json:"serialNumber,omitempty"`
	Category       string          `json:"category,omitempty"`
	Brand          string          `json:"brand,omitempty"`
	Model          string          `json:"model,omitempty"`
	Location       string          `json:"location,omitempty"`
	PurchaseDate   *time.Time      `json:"purchaseDate,omitempty"`
	PurchasePrice  decimal.Decimal `json:"purchasePrice"`
	WarrantyExpiry *time.Time      `json:"warrantyExpiry,omitempty"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CreateEquipmentRequest is the body of POST /equipment
type CreateEquipmentRequest struct {
	Name           string            `json:"name" binding:"required,max=200"`
	SerialNumber   string            `json:"serialNumber" binding:"max=100"`
	Category       string            `json:"category" binding:"max=100"`
	Brand          string            `json:"brand" binding:"max=100"`
	Model          string            `json:"model" binding:"max=100"`
	Location       string            `json:"location" binding:"max=200"`
	PurchaseDate   *valueobject.Date `json:"purchaseDate"`
	PurchasePrice  *decimal.Decimal  `json:"purchasePrice"`
	WarrantyExpiry *valueobject.Date `json:"warrantyExpiry"`
	Status         string            `json:"status" binding:"omitempty,oneof=available assigned maintenance retired"`
	Notes          string            `json:"notes"`
}

// UpdateEquipmentRequest is the body of PUT /equipment/:id
type UpdateEquipmentRequest struct {
	Name           *string           `json:"name" binding:"omitempty,min=1,max=200"`
	SerialNumber   *string           `json:"serialNumber" binding:"omitempty,max=100"`
	Category       *string           `json:"category" binding:"omitempty,max=100"`
	Brand          *string           `json:"brand" binding:"omitempty,max=100"`
	Model          *string           `json:"model" binding:"omitempty,max=100"`
	Location       *string           `json:"location" binding:"omitempty,max=200"`
	PurchaseDate   *valueobject.Date `json:"purchaseDate"`
	PurchasePrice  *decimal.Decimal  `json:"purchasePrice"`
	WarrantyExpiry *valueobject.Date `json:"warrantyExpiry"`
	Status         *string           `json:"status" binding:"omitempty,oneof=available assigned maintenance retired"`
	Notes          *string           `json:"notes"`
}

// ToEquipmentResponse converts equipment to its response DTO
func ToEquipmentResponse(e *asset.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:             e.ID,
		Name:           e.Name,
		SerialNumber:   e.SerialNumber,
		Category:       e.Category,
		Brand:          e.Brand,
		Model:          e.Model,
		Location:       e.Location,
		PurchaseDate:   e.PurchaseDate,
		PurchasePrice:  e.PurchasePrice,
		WarrantyExpiry: e.WarrantyExpiry,
		Status:         string(e.Status),
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// VehicleResponse is a vehicle in API responses
type VehicleResponse struct {
	ID              uuid.UUID  `json:"id"`
	PlateNumber     string     `json:"plateNumber"`
	Brand           string     `json:"brand,omitempty"`
	Model           string     `json:"model,omitempty"`
	Year            int        `json:"year,omitempty"`
	VIN             string     `json:"vin,omitempty"`
	FuelType        string     `json:"fuelType"`
	Mileage         int        `json:"mileage"`
	Status          string     `json:"status"`
	DriverID        *uuid.UUID `json:"driverId,omitempty"`
	InsuranceExpiry *time.Time `json:"insuranceExpiry,omitempty"`
	LastServiceDate *time.Time `json:"lastServiceDate,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// CreateVehicleRequest is the body of POST /vehicles
type CreateVehicleRequest struct {
	PlateNumber     string            `json:"plateNumber" binding:"required,max=20"`
	Brand           string            `json:"brand" binding:"max=100"`
	Model           string            `json:"model" binding:"max=100"`
	Year            int               `json:"year" binding:"omitempty,min=1900"`
	VIN             string            `json:"vin" binding:"max=50"`
	FuelType        string            `json:"fuelType" binding:"omitempty,oneof=petrol diesel electric hybrid"`
	Mileage         int               `json:"mileage" binding:"min=0"`
	Status          string            `json:"status" binding:"omitempty,oneof=available in_use maintenance out_of_service"`
	DriverID        *uuid.UUID        `json:"driverId"`
	InsuranceExpiry *valueobject.Date `json:"insuranceExpiry"`
	LastServiceDate *valueobject.Date `json:"lastServiceDate"`
	Notes           string            `json:"notes"`
}

// UpdateVehicleRequest is the body of PUT /vehicles/:id
type UpdateVehicleRequest struct {
	PlateNumber     *string           `json:"plateNumber" binding:"omitempty,min=1,max=20"`
	Brand           *string           `json:"brand" binding:"omitempty,max=100"`
	Model           *string           `json:"model" binding:"omitempty,max=100"`
	Year            *int              `json:"year" binding:"omitempty,min=1900"`
	VIN             *string           `json:"vin" binding:"omitempty,max=50"`
	FuelType        *string           `json:"fuelType" binding:"omitempty,oneof=petrol diesel electric hybrid"`
	Mileage         *int              `json:"mileage" binding:"omitempty,min=0"`
	Status          *string           `json:"status" binding:"omitempty,oneof=available in_use maintenance out_of_service"`
	DriverID        *uuid.UUID        `json:"driverId"`
	InsuranceExpiry *valueobject.Date `json:"insuranceExpiry"`
	LastServiceDate *valueobject.Date `json:"lastServiceDate"`
	Notes           *string           `json:"notes"`
}

// ToVehicleResponse converts a vehicle to its response DTO
func ToVehicleResponse(v *asset.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:              v.ID,
		PlateNumber:     v.PlateNumber,
		Brand:           v.Brand,
		Model:           v.Model,
		Year:            v.Year,
		VIN:             v.VIN,
		FuelType:        string(v.FuelType),
		Mileage:         v.Mileage,
		Status:          string(v.Status),
		DriverID:        v.DriverID,
		InsuranceExpiry: v.InsuranceExpiry,
		LastServiceDate: v.LastServiceDate,
		Notes:           v.Notes,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// AssignmentResponse is an equipment assignment in API responses
type AssignmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	EquipmentID    uuid.UUID  `json:"equipmentId"`
	UserID         uuid.UUID  `json:"userId"`
	AssignedAt     time.Time  `json:"assignedAt"`
	ExpectedReturn *time.Time `json:"expectedReturn,omitempty"`
	ReturnedAt     *time.Time `json:"returnedAt,omitempty"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CreateAssignmentRequest is the body of POST /equipment-assignments
type CreateAssignmentRequest struct {
	EquipmentID    uuid.UUID         `json:"equipmentId" binding:"required"`
	UserID         uuid.UUID         `json:"userId" binding:"required"`
	AssignedAt     *valueobject.Date `json:"assignedAt"`
	ExpectedReturn *valueobject.Date `json:"expectedReturn"`
	Notes          string            `json:"notes"`
}

// UpdateAssignmentRequest is the body of PUT /equipment-assignments/:id.
// Returning equipment goes through the dedicated return endpoint.
type UpdateAssignmentRequest struct {
	UserID         *uuid.UUID        `json:"userId"`
	ExpectedReturn *valueobject.Date `json:"expectedReturn"`
	Notes          *string           `json:"notes"`
}

// ToAssignmentResponse converts an assignment to its response DTO
func ToAssignmentResponse(a *asset.EquipmentAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:             a.ID,
		EquipmentID:    a.EquipmentID,
		UserID:         a.UserID,
		AssignedAt:     a.AssignedAt,
		ExpectedReturn: a.ExpectedReturn,
		ReturnedAt:     a.ReturnedAt,
		Status:         string(a.Status),
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// LicenseResponse is a software license in API responses. The key is
// returned so administrators can read it back.
type LicenseResponse struct {
	ID           uuid.UUID       `json:"id"`
	SoftwareName string          `json:"softwareName"`
	Vendor       string          `json:"vendor,omitempty"`
	LicenseKey   string          `json:"licenseKey,omitempty"`
	LicenseType  string          `json:"licenseType"`
	Seats        int             `json:"seats"`
	PurchaseDate *time.Time      `json:"purchaseDate,omitempty"`
	ExpiryDate   *time.Time      `json:"expiryDate,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	AssignedTo   *uuid.UUID      `json:"assignedTo,omitempty"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// CreateLicenseRequest is the body of POST /software-licenses
type CreateLicenseRequest struct {
	SoftwareName string            `json:"softwareName" binding:"required,max=200"`
	Vendor       string            `json:"vendor" binding:"max=200"`
	LicenseKey   string            `json:"licenseKey" binding:"max=500"`
	LicenseType  string            `json:"licenseType" binding:"omitempty,oneof=perpetual subscription trial open_source"`
	Seats        *int              `json:"seats" binding:"omitempty,min=1"`
	PurchaseDate *valueobject.Date `json:"purchaseDate"`
	ExpiryDate   *valueobject.Date `json:"expiryDate"`
	Cost         *decimal.Decimal  `json:"cost"`
	AssignedTo   *uuid.UUID        `json:"assignedTo"`
	Status       string            `json:"status" binding:"omitempty,oneof=active expired revoked"`
	Notes        string            `json:"notes"`
}

// UpdateLicenseRequest is the body of PUT /software-licenses/:id
type UpdateLicenseRequest struct {
	SoftwareName *string           `json:"softwareName" binding:"omitempty,min=1,max=200"`
	Vendor       *string           `json:"vendor" binding:"omitempty,max=200"`
	LicenseKey   *string           `json:"licenseKey" binding:"omitempty,max=500"`
	LicenseType  *string           `json:"licenseType" binding:"omitempty,oneof=perpetual subscription trial open_source"`
	Seats        *int              `json:"seats" binding:"omitempty,min=1"`
	PurchaseDate *valueobject.Date `json:"purchaseDate"`
	ExpiryDate   *valueobject.Date `json:"expiryDate"`
	Cost         *decimal.Decimal  `json:"cost"`
	AssignedTo   *uuid.UUID        `json:"assignedTo"`
	Status       *string           `json:"status" binding:"omitempty,oneof=active expired revoked"`
	Notes        *string           `json:"notes"`
}

// ToLicenseResponse converts a license to its response DTO
func ToLicenseResponse(l *asset.SoftwareLicense) LicenseResponse {
	return LicenseResponse{
		ID:           l.ID,
		SoftwareName: l.SoftwareName,
		Vendor:       l.Vendor,
		LicenseKey:   l.LicenseKey,
		LicenseType:  string(l.LicenseType),
		Seats:        l.Seats,
		PurchaseDate: l.PurchaseDate,
		ExpiryDate:   l.ExpiryDate,
		Cost:         l.Cost,
		AssignedTo:   l.AssignedTo,
		Status:       string(l.Status),
		Notes:        l.Notes,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
