package personnel

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/personnel"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeResponse is an employee in API responses. The stored phone is
// returned both joined and split into its two form fields.
type EmployeeResponse struct {
	ID               uuid.UUID       `json:"id"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	FullName         string          `json:"fullName"`
	Email            string          `json:"email,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	PhoneCountryCode string          `json:"phoneCountryCode,omitempty"`
	PhoneNumber      string          `json:"phoneNumber,omitempty"`
	Position         string          `json:"position,omitempty"`
	Department       string          `json:"department,omitempty"`
	HireDate         *time.Time      `json:"hireDate,omitempty"`
	Salary           decimal.Decimal `json:"salary"`
	ContractType     string          `json:"contractType"`
	Status           string          `json:"status"`
	UserID           *uuid.UUID      `json:"userId,omitempty"`
	Address          string          `json:"address,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// CreateEmployeeRequest is the body of POST /employees
type CreateEmployeeRequest struct {
	FirstName        string            `json:"firstName" binding:"required,max=100"`
	LastName         string            `json:"lastName" binding:"required,max=100"`
	Email            string            `json:"email" binding:"omitempty,email,max=255"`
	PhoneCountryCode string            `json:"phoneCountryCode" binding:"max=6"`
	PhoneNumber      string            `json:"phoneNumber" binding:"max=30"`
	Position         string            `json:"position" binding:"max=100"`
	Department       string            `json:"department" binding:"max=100"`
	HireDate         *valueobject.Date `json:"hireDate"`
	Salary           *decimal.Decimal  `json:"salary"`
	ContractType     string            `json:"contractType" binding:"omitempty,oneof=permanent fixed_term intern contractor"`
	Status           string            `json:"status" binding:"omitempty,oneof=active on_leave terminated"`
	UserID           *uuid.UUID        `json:"userId"`
	Address          string            `json:"address"`
	Notes            string            `json:"notes"`
}

// UpdateEmployeeRequest is the body of PUT /employees/:id
type UpdateEmployeeRequest struct {
	FirstName        *string           `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName         *string           `json:"lastName" binding:"omitempty,min=1,max=100"`
	Email            *string           `json:"email" binding:"omitempty,max=255"`
	PhoneCountryCode *string           `json:"phoneCountryCode" binding:"omitempty,max=6"`
	PhoneNumber      *string           `json:"phoneNumber" binding:"omitempty,max=30"`
	Position         *string           `json:"position" binding:"omitempty,max=100"`
	Department       *string           `json:"department" binding:"omitempty,max=100"`
	HireDate         *valueobject.Date `json:"hireDate"`
	Salary           *decimal.Decimal  `json:"salary"`
	ContractType     *string           `json:"contractType" binding:"omitempty,oneof=permanent fixed_term intern contractor"`
	Status           *string           `json:"status" binding:"omitempty,oneof=active on_leave terminated"`
	UserID           *uuid.UUID        `json:"userId"`
	Address          *string           `json:"address"`
	Notes            *string           `json:"notes"`
}

// ToEmployeeResponse converts an employee to its response DTO
func ToEmployeeResponse(e *personnel.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		FullName:         e.FullName(),
		Email:            e.Email,
		Phone:            e.Phone.String(),
		PhoneCountryCode: e.Phone.CountryCode,
		PhoneNumber:      e.Phone.Number,
		Position:         e.Position,
		Department:       e.Department,
		HireDate:         e.HireDate,
		Salary:           e.Salary,
		ContractType:     string(e.ContractType),
		Status:           string(e.Status),
		UserID:           e.UserID,
		Address:          e.Address,
		Notes:            e.Notes,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
