package handler

import (
	personnelapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/personnel"
)

// EmployeeHandler serves /employees
type EmployeeHandler = CRUDHandler[personnelapp.EmployeeResponse, personnelapp.CreateEmployeeRequest, personnelapp.UpdateEmployeeRequest]

// NewEmployeeHandler creates a handler for personnel records
func NewEmployeeHandler(service CRUDService[personnelapp.EmployeeResponse, personnelapp.CreateEmployeeRequest, personnelapp.UpdateEmployeeRequest]) *EmployeeHandler {
	return NewCRUDHandler(service,
		FilterParam{Name: "department"},
		FilterParam{Name: "status"},
		FilterParam{Name: "contractType"},
	)
}
