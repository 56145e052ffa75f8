// Package models holds the GORM persistence models. Each model converts to and
// from its domain entity with ToDomain and FromDomain.
package models

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel is the column set behind shared.BaseEntity. Timestamps are set
// by the domain, so GORM's autoCreateTime/autoUpdateTime stay off.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (m *BaseModel) entity() shared.BaseEntity {
	return shared.BaseEntity(*m)
}

func (m *BaseModel) setEntity(e shared.BaseEntity) {
	*m = BaseModel(e)
}

// All lists the models for AutoMigrate, referenced tables first
func All() []any {
	return []any{
		&UserModel{},
		&BankModel{},
		&BankTransactionModel{},
		&InvoiceModel{},
		&EmployeeModel{},
		&EquipmentModel{},
		&VehicleModel{},
		&EquipmentAssignmentModel{},
		&SoftwareLicenseModel{},
		&DocumentModel{},
		&ContractModel{},
		&AlertModel{},
	}
}
