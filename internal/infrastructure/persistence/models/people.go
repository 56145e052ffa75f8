package models

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/personnel"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Email            string        `gorm:"type:varchar(200);not null;uniqueIndex:idx_users_email"`
	PasswordHash     string        `gorm:"type:varchar(255);not null"`
	FirstName        string        `gorm:"type:varchar(100)"`
	LastName         string        `gorm:"type:varchar(100)"`
	Role             identity.Role `gorm:"type:varchar(20);not null;default:'employee';index"`
	Phone            string        `gorm:"type:varchar(30)"`
	PhoneCountryCode string        `gorm:"type:varchar(4)"`
	PhoneNumber      string        `gorm:"type:varchar(15)"`
	IsActive         bool          `gorm:"not null;default:true"`
	LastLoginAt      *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.entity(),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Role:         m.Role,
		Phone:        valueobject.PhoneFromColumns(m.PhoneCountryCode, m.PhoneNumber, m.Phone),
		IsActive:     m.IsActive,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.setEntity(u.BaseEntity)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Role = u.Role
	m.Phone = u.Phone.String()
	m.PhoneCountryCode = u.Phone.CountryCode
	m.PhoneNumber = u.Phone.Number
	m.IsActive = u.IsActive
	m.LastLoginAt = u.LastLoginAt
}

// EmployeeModel is the persistence model for the Employee domain entity.
// The phone parts have their own columns; phone holds the joined
// "+237699112233" form for search.
type EmployeeModel struct {
	BaseModel
	FirstName        string                   `gorm:"type:varchar(100);not null"`
	LastName         string                   `gorm:"type:varchar(100);not null;index"`
	Email            *string                  `gorm:"type:varchar(200);uniqueIndex:idx_employees_email"`
	Phone            string                   `gorm:"type:varchar(30)"`
	PhoneCountryCode string                   `gorm:"type:varchar(4)"`
	PhoneNumber      string                   `gorm:"type:varchar(15)"`
	Position         string                   `gorm:"type:varchar(100)"`
	Department       string                   `gorm:"type:varchar(100);index"`
	HireDate         *time.Time
	Salary           decimal.Decimal          `gorm:"type:decimal(18,2);not null;default:0"`
	ContractType     personnel.ContractType   `gorm:"type:varchar(20);not null;default:'permanent'"`
	Status           personnel.EmployeeStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	UserID           *uuid.UUID               `gorm:"type:uuid;index"`
	Address          string                   `gorm:"type:text"`
	Notes            string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee entity.
func (m *EmployeeModel) ToDomain() *personnel.Employee {
	return &personnel.Employee{
		BaseEntity:   m.BaseModel.entity(),
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        derefString(m.Email),
		Phone:        valueobject.PhoneFromColumns(m.PhoneCountryCode, m.PhoneNumber, m.Phone),
		Position:     m.Position,
		Department:   m.Department,
		HireDate:     m.HireDate,
		Salary:       m.Salary,
		ContractType: m.ContractType,
		Status:       m.Status,
		UserID:       m.UserID,
		Address:      m.Address,
		Notes:        m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Employee entity.
func (m *EmployeeModel) FromDomain(e *personnel.Employee) {
	m.setEntity(e.BaseEntity)
	m.FirstName = e.FirstName
	m.LastName = e.LastName
	m.Email = nullableString(e.Email)
	m.Phone = e.Phone.String()
	m.PhoneCountryCode = e.Phone.CountryCode
	m.PhoneNumber = e.Phone.Number
	m.Position = e.Position
	m.Department = e.Department
	m.HireDate = e.HireDate
	m.Salary = e.Salary
	m.ContractType = e.ContractType
	m.Status = e.Status
	m.UserID = e.UserID
	m.Address = e.Address
	m.Notes = e.Notes
}
