// Package personnel implements the employee use cases.
package personnel

import (
	"context"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/personnel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmployeeService manages employee records
type EmployeeService struct {
	*crud.Service[personnel.Employee, EmployeeResponse]
	repo     personnel.EmployeeRepository
	userRepo identity.UserRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(repo personnel.EmployeeRepository, userRepo identity.UserRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		Service:  crud.NewService[personnel.Employee, EmployeeResponse](repo, "Employee", ToEmployeeResponse, logger),
		repo:     repo,
		userRepo: userRepo,
	}
}

// Create registers an employee. Email is unique when present; the linked
// user, when given, must exist.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	email := normalizeEmail(req.Email)
	if err := crud.EnsureUnique[personnel.Employee](ctx, s.repo, "email", email, nil, "Employee", "email"); err != nil {
		return nil, err
	}
	if err := crud.EnsureOptionalExists[identity.User](ctx, s.userRepo, req.UserID, "User", "userId"); err != nil {
		return nil, err
	}

	e, err := personnel.NewEmployee(req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	e.Email = email
	if err := e.SetPhone(req.PhoneCountryCode, req.PhoneNumber); err != nil {
		return nil, err
	}
	e.Position = strings.TrimSpace(req.Position)
	e.Department = strings.TrimSpace(req.Department)
	e.HireDate = req.HireDate.Ptr()
	crud.Set(&e.Salary, req.Salary)
	if req.ContractType != "" {
		e.ContractType = personnel.ContractType(req.ContractType)
	}
	if req.Status != "" {
		e.Status = personnel.EmployeeStatus(req.Status)
	}
	e.UserID = req.UserID
	e.Address = strings.TrimSpace(req.Address)
	e.Notes = req.Notes
	if err := e.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.Save(ctx, e)
	if err != nil {
		return nil, err
	}
	s.Logger().Info("Employee created", zap.String("employee_id", e.ID.String()))
	return resp, nil
}

// Update changes the fields present in req. Sending only one of the two phone
// fields keeps the other stored part.
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	e, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != e.Email {
			if err := crud.EnsureUnique[personnel.Employee](ctx, s.repo, "email", email, &e.ID, "Employee", "email"); err != nil {
				return nil, err
			}
		}
		e.Email = email
	}
	if req.UserID != nil {
		if err := crud.EnsureOptionalExists[identity.User](ctx, s.userRepo, req.UserID, "User", "userId"); err != nil {
			return nil, err
		}
		e.UserID = req.UserID
	}
	if req.FirstName != nil || req.LastName != nil {
		first, last := e.FirstName, e.LastName
		crud.Set(&first, req.FirstName)
		crud.Set(&last, req.LastName)
		e.SetName(first, last)
	}
	if req.PhoneCountryCode != nil || req.PhoneNumber != nil {
		code, number := e.Phone.CountryCode, e.Phone.Number
		crud.Set(&code, req.PhoneCountryCode)
		crud.Set(&number, req.PhoneNumber)
		if err := e.SetPhone(code, number); err != nil {
			return nil, err
		}
	}
	crud.SetTrimmed(&e.Position, req.Position)
	crud.SetTrimmed(&e.Department, req.Department)
	crud.SetDate(&e.HireDate, req.HireDate)
	crud.Set(&e.Salary, req.Salary)
	crud.SetEnum(&e.ContractType, req.ContractType)
	crud.SetEnum(&e.Status, req.Status)
	crud.SetTrimmed(&e.Address, req.Address)
	crud.Set(&e.Notes, req.Notes)

	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.Touch()
	return s.Save(ctx, e)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
