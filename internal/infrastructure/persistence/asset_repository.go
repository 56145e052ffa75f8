package persistence

import (
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/asset"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEquipmentRepository implements asset.EquipmentRepository using GORM
type GormEquipmentRepository = GormRepository[asset.Equipment, models.EquipmentModel, *models.EquipmentModel]

// NewGormEquipmentRepository creates a new GormEquipmentRepository
func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return NewGormRepository[asset.Equipment, models.EquipmentModel](db, QueryOptions{
		SearchColumns: []string{"name", "serial_number", "brand", "model"},
		FilterColumns: map[string]string{
			"status":   "status",
			"category": "category",
			"location": "location",
		},
		SortFields: EquipmentSortFields,
	})
}

// GormVehicleRepository implements asset.VehicleRepository using GORM
type GormVehicleRepository = GormRepository[asset.Vehicle, models.VehicleModel, *models.VehicleModel]

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return NewGormRepository[asset.Vehicle, models.VehicleModel](db, QueryOptions{
		SearchColumns: []string{"plate_number", "brand", "model", "vin"},
		FilterColumns: map[string]string{
			"status":   "status",
			"fuelType": "fuel_type",
			"brand":    "brand",
			"driverId": "driver_id",

			"insuranceBefore": "insurance_expiry <= ?",
		},
		SortFields: VehicleSortFields,
	})
}

// GormEquipmentAssignmentRepository implements asset.EquipmentAssignmentRepository using GORM
type GormEquipmentAssignmentRepository = GormRepository[asset.EquipmentAssignment, models.EquipmentAssignmentModel, *models.EquipmentAssignmentModel]

// NewGormEquipmentAssignmentRepository creates a new GormEquipmentAssignmentRepository
func NewGormEquipmentAssignmentRepository(db *gorm.DB) *GormEquipmentAssignmentRepository {
	return NewGormRepository[asset.EquipmentAssignment, models.EquipmentAssignmentModel](db, QueryOptions{
		SearchColumns: []string{"notes"},
		FilterColumns: map[string]string{
			"equipmentId": "equipment_id",
			"userId":      "user_id",
			"status":      "status",
		},
		SortFields:  AssignmentSortFields,
		DefaultSort: "assigned_at",
	})
}

// GormSoftwareLicenseRepository implements asset.SoftwareLicenseRepository using GORM
type GormSoftwareLicenseRepository = GormRepository[asset.SoftwareLicense, models.SoftwareLicenseModel, *models.SoftwareLicenseModel]

// NewGormSoftwareLicenseRepository creates a new GormSoftwareLicenseRepository
func NewGormSoftwareLicenseRepository(db *gorm.DB) *GormSoftwareLicenseRepository {
	return NewGormRepository[asset.SoftwareLicense, models.SoftwareLicenseModel](db, QueryOptions{
		SearchColumns: []string{"software_name", "vendor"},
		FilterColumns: map[string]string{
			"status":        "status",
			"vendor":        "vendor",
			"licenseType":   "license_type",
			"assignedTo":    "assigned_to",
			"expiresBefore": "expiry_date <= ?",
		},
		SortFields: LicenseSortFields,
	})
}

var (
	_ asset.EquipmentRepository           = (*GormEquipmentRepository)(nil)
	_ asset.VehicleRepository             = (*GormVehicleRepository)(nil)
	_ asset.EquipmentAssignmentRepository = (*GormEquipmentAssignmentRepository)(nil)
	_ asset.SoftwareLicenseRepository     = (*GormSoftwareLicenseRepository)(nil)
)
