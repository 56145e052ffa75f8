// Package personnel holds employee records.
package personnel

import (
	"strings"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeStatus represents the employment status
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusOnLeave    EmployeeStatus = "on_leave"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
)

// ContractType is the kind of employment contract
type ContractType string

const (
	ContractTypePermanent  ContractType = "permanent"
	ContractTypeFixedTerm  ContractType = "fixed_term"
	ContractTypeIntern     ContractType = "intern"
	ContractTypeContractor ContractType = "contractor"
)

// Employee is a member of staff
type Employee struct {
	shared.BaseEntity
	FirstName    string
	LastName     string
	Email        string
	Phone        valueobject.Phone
	Position     string
	Department   string
	HireDate     *time.Time
	Salary       decimal.Decimal
	ContractType ContractType
	Status       EmployeeStatus
	UserID       *uuid.UUID
	Address      string
	Notes        string
}

// NewEmployee creates an active permanent employee
func NewEmployee(firstName, lastName string) (*Employee, error) {
	e := &Employee{
		BaseEntity:   shared.NewBaseEntity(),
		Salary:       decimal.Zero,
		ContractType: ContractTypePermanent,
		Status:       EmployeeStatusActive,
	}
	e.SetName(firstName, lastName)
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// SetName stores normalized first and last names
func (e *Employee) SetName(firstName, lastName string) {
	e.FirstName = valueobject.PersonName(firstName)
	e.LastName = valueobject.PersonName(lastName)
}

// SetEmail stores a lower-cased email
func (e *Employee) SetEmail(email string) {
	e.Email = strings.ToLower(strings.TrimSpace(email))
}

// SetPhone joins a country code and national number. Both empty clears the phone.
func (e *Employee) SetPhone(countryCode, number string) error {
	if strings.TrimSpace(countryCode) == "" && strings.TrimSpace(number) == "" {
		e.Phone = valueobject.Phone{}
		return nil
	}
	p, err := valueobject.NewPhone(countryCode, number)
	if err != nil {
		return shared.NewValidationError("phoneNumber", err.Error())
	}
	e.Phone = p
	return nil
}

// FullName returns "First Last"
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Validate checks required fields, enumerations and salary
func (e *Employee) Validate() error {
	if err := shared.FirstError(
		shared.Required("firstName", e.FirstName),
		shared.Required("lastName", e.LastName),
		shared.OneOf("status", e.Status, EmployeeStatusActive, EmployeeStatusOnLeave, EmployeeStatusTerminated),
		shared.OneOf("contractType", e.ContractType,
			ContractTypePermanent, ContractTypeFixedTerm, ContractTypeIntern, ContractTypeContractor),
	); err != nil {
		return err
	}
	if e.Salary.IsNegative() {
		return shared.NewValidationError("salary", "salary cannot be negative")
	}
	return nil
}

// EmployeeRepository persists employees
type EmployeeRepository interface {
	shared.Repository[Employee]
}
