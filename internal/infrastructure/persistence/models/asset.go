package models

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/asset"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EquipmentModel is the persistence model for the Equipment domain entity.
type EquipmentModel struct {
	BaseModel
	Name           string                `gorm:"type:varchar(200);not null"`
	SerialNumber   *string               `gorm:"type:varchar(100);uniqueIndex:idx_equipment_serial"`
	Category       string                `gorm:"type:varchar(100);index"`
	Brand          string                `gorm:"type:varchar(100)"`
	Model          string                `gorm:"type:varchar(100)"`
	Location       string                `gorm:"type:varchar(200);index"`
	PurchaseDate   *time.Time
	PurchasePrice  decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	WarrantyExpiry *time.Time
	Status         asset.EquipmentStatus `gorm:"type:varchar(20);not null;default:'available';index"`
	Notes          string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (EquipmentModel) TableName() string {
	return "equipment"
}

// ToDomain converts the persistence model to a domain Equipment entity.
func (m *EquipmentModel) ToDomain() *asset.Equipment {
	return &asset.Equipment{
		BaseEntity:     m.BaseModel.entity(),
		Name:           m.Name,
		SerialNumber:   derefString(m.SerialNumber),
		Category:       m.Category,
		Brand:          m.Brand,
		Model:          m.Model,
		Location:       m.Location,
		PurchaseDate:   m.PurchaseDate,
		PurchasePrice:  m.PurchasePrice,
		WarrantyExpiry: m.WarrantyExpiry,
		Status:         m.Status,
		Notes:          m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Equipment entity.
func (m *EquipmentModel) FromDomain(e *asset.Equipment) {
	m.setEntity(e.BaseEntity)
	m.Name = e.Name
	m.SerialNumber = nullableString(e.SerialNumber)
	m.Category = e.Category
	m.Brand = e.Brand
	m.Model = e.Model
	m.Location = e.Location
	m.PurchaseDate = e.PurchaseDate
	m.PurchasePrice = e.PurchasePrice
	m.WarrantyExpiry = e.WarrantyExpiry
	m.Status = e.Status
	m.Notes = e.Notes
}

// VehicleModel is the persistence model for the Vehicle domain entity.
type VehicleModel struct {
	BaseModel
	PlateNumber     string              `gorm:"type:varchar(20);not null;uniqueIndex:idx_vehicles_plate"`
	Brand           string              `gorm:"type:varchar(100);index"`
	Model           string              `gorm:"type:varchar(100)"`
	Year            int                 `gorm:"not null;default:0"`
	VIN             string              `gorm:"column:vin;type:varchar(50)"`
	FuelType        asset.FuelType      `gorm:"type:varchar(20);not null;default:'diesel'"`
	Mileage         int                 `gorm:"not null;default:0"`
	Status          asset.VehicleStatus `gorm:"type:varchar(20);not null;default:'available';index"`
	DriverID        *uuid.UUID          `gorm:"type:uuid;index"`
	InsuranceExpiry *time.Time
	LastServiceDate *time.Time
	Notes           string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (VehicleModel) TableName() string {
	return "vehicles"
}

// ToDomain converts the persistence model to a domain Vehicle entity.
func (m *VehicleModel) ToDomain() *asset.Vehicle {
	return &asset.Vehicle{
		BaseEntity:      m.BaseModel.entity(),
		PlateNumber:     m.PlateNumber,
		Brand:           m.Brand,
		Model:           m.Model,
		Year:            m.Year,
		VIN:             m.VIN,
		FuelType:        m.FuelType,
		Mileage:         m.Mileage,
		Status:          m.Status,
		DriverID:        m.DriverID,
		InsuranceExpiry: m.InsuranceExpiry,
		LastServiceDate: m.LastServiceDate,
		Notes:           m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Vehicle entity.
func (m *VehicleModel) FromDomain(v *asset.Vehicle) {
	m.setEntity(v.BaseEntity)
	m.PlateNumber = v.PlateNumber
	m.Brand = v.Brand
	m.Model = v.Model
	m.Year = v.Year
	m.VIN = v.VIN
	m.FuelType = v.FuelType
	m.Mileage = v.Mileage
	m.Status = v.Status
	m.DriverID = v.DriverID
	m.InsuranceExpiry = v.InsuranceExpiry
	m.LastServiceDate = v.LastServiceDate
	m.Notes = v.Notes
}

// EquipmentAssignmentModel is the persistence model for the EquipmentAssignment domain entity.
type EquipmentAssignmentModel struct {
	BaseModel
	EquipmentID    uuid.UUID              `gorm:"type:uuid;not null;index;uniqueIndex:idx_equipment_assignments_active,where:status = 'active'"`
	UserID         uuid.UUID              `gorm:"type:uuid;not null;index"`
	AssignedAt     time.Time              `gorm:"not null"`
	ExpectedReturn *time.Time
	ReturnedAt     *time.Time
	Status         asset.AssignmentStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes          string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (EquipmentAssignmentModel) TableName() string {
	return "equipment_assignments"
}

// ToDomain converts the persistence model to a domain EquipmentAssignment entity.
func (m *EquipmentAssignmentModel) ToDomain() *asset.EquipmentAssignment {
	return &asset.EquipmentAssignment{
		BaseEntity:     m.BaseModel.entity(),
		EquipmentID:    m.EquipmentID,
		UserID:         m.UserID,
		AssignedAt:     m.AssignedAt,
		ExpectedReturn: m.ExpectedReturn,
		ReturnedAt:     m.ReturnedAt,
		Status:         m.Status,
		Notes:          m.Notes,
	}
}

// FromDomain populates the persistence model from a domain EquipmentAssignment entity.
func (m *EquipmentAssignmentModel) FromDomain(a *asset.EquipmentAssignment) {
	m.setEntity(a.BaseEntity)
	m.EquipmentID = a.EquipmentID
	m.UserID = a.UserID
	m.AssignedAt = a.AssignedAt
	m.ExpectedReturn = a.ExpectedReturn
	m.ReturnedAt = a.ReturnedAt
	m.Status = a.Status
	m.Notes = a.Notes
}

// SoftwareLicenseModel is the persistence model for the SoftwareLicense domain entity.
type SoftwareLicenseModel struct {
	BaseModel
	SoftwareName string              `gorm:"type:varchar(200);not null"`
	Vendor       string              `gorm:"type:varchar(200);index"`
	LicenseKey   string              `gorm:"type:varchar(500)"`
	LicenseType  asset.LicenseType   `gorm:"type:varchar(20);not null;default:'subscription'"`
	Seats        int                 `gorm:"not null;default:1"`
	PurchaseDate *time.Time
	ExpiryDate   *time.Time          `gorm:"index"`
	Cost         decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	AssignedTo   *uuid.UUID          `gorm:"type:uuid;index"`
	Status       asset.LicenseStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes        string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SoftwareLicenseModel) TableName() string {
	return "software_licenses"
}

// ToDomain converts the persistence model to a domain SoftwareLicense entity.
func (m *SoftwareLicenseModel) ToDomain() *asset.SoftwareLicense {
	return &asset.SoftwareLicense{
		BaseEntity:   m.BaseModel.entity(),
		SoftwareName: m.SoftwareName,
		Vendor:       m.Vendor,
		LicenseKey:   m.LicenseKey,
		LicenseType:  m.LicenseType,
		Seats:        m.Seats,
		PurchaseDate: m.PurchaseDate,
		ExpiryDate:   m.ExpiryDate,
		Cost:         m.Cost,
		AssignedTo:   m.AssignedTo,
		Status:       m.Status,
		Notes:        m.Notes,
	}
}

// FromDomain populates the persistence model from a domain SoftwareLicense entity.
func (m *SoftwareLicenseModel) FromDomain(l *asset.SoftwareLicense) {
	m.setEntity(l.BaseEntity)
	m.SoftwareName = l.SoftwareName
	m.Vendor = l.Vendor
	m.LicenseKey = l.LicenseKey
	m.LicenseType = l.LicenseType
	m.Seats = l.Seats
	m.PurchaseDate = l.PurchaseDate
	m.ExpiryDate = l.ExpiryDate
	m.Cost = l.Cost
	m.AssignedTo = l.AssignedTo
	m.Status = l.Status
	m.Notes = l.Notes
}

// nullableString maps "" to NULL so optional unique columns do not collide
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
