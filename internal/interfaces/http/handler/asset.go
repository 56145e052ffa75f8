package handler

import (
	"context"

	assetapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/asset"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EquipmentHandler serves /equipment
type EquipmentHandler = CRUDHandler[assetapp.EquipmentResponse, assetapp.CreateEquipmentRequest, assetapp.UpdateEquipmentRequest]

// NewEquipmentHandler creates a handler for equipment
func NewEquipmentHandler(service CRUDService[assetapp.EquipmentResponse, assetapp.CreateEquipmentRequest, assetapp.UpdateEquipmentRequest]) *EquipmentHandler {
	return NewCRUDHandler(service,
		FilterParam{Name: "status"},
		FilterParam{Name: "category"},
		FilterParam{Name: "location"},
	)
}

// VehicleHandler serves /vehicles
type VehicleHandler = CRUDHandler[assetapp.VehicleResponse, assetapp.CreateVehicleRequest, assetapp.UpdateVehicleRequest]

// NewVehicleHandler creates a handler for vehicles
func NewVehicleHandler(service CRUDService[assetapp.VehicleResponse, assetapp.CreateVehicleRequest, assetapp.UpdateVehicleRequest]) *VehicleHandler {
	return NewCRUDHandler(service,
		FilterParam{Name: "status"},
		FilterParam{Name: "fuelType"},
		FilterParam{Name: "brand"},
		FilterParam{Name: "driverId", Kind: FilterUUID},
	)
}

// LicenseHandler serves /software-licenses
type LicenseHandler = CRUDHandler[assetapp.LicenseResponse, assetapp.CreateLicenseRequest, assetapp.UpdateLicenseRequest]

// NewLicenseHandler creates a handler for software licenses
func NewLicenseHandler(service CRUDService[assetapp.LicenseResponse, assetapp.CreateLicenseRequest, assetapp.UpdateLicenseRequest]) *LicenseHandler {
	return NewCRUDHandler(service,
		FilterParam{Name: "status"},
		FilterParam{Name: "vendor"},
		FilterParam{Name: "licenseType"},
		FilterParam{Name: "assignedTo", Kind: FilterUUID},
		FilterParam{Name: "expiresBefore", Kind: FilterDateEnd},
	)
}

// AssignmentService is the equipment assignment use case set
type AssignmentService interface {
	CRUDService[assetapp.AssignmentResponse, assetapp.CreateAssignmentRequest, assetapp.UpdateAssignmentRequest]
	Return(ctx context.Context, id uuid.UUID) (*assetapp.AssignmentResponse, error)
}

// AssignmentHandler serves /equipment-assignments
type AssignmentHandler struct {
	*CRUDHandler[assetapp.AssignmentResponse, assetapp.CreateAssignmentRequest, assetapp.UpdateAssignmentRequest]
	service AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler
func NewAssignmentHandler(service AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		CRUDHandler: NewCRUDHandler[assetapp.AssignmentResponse, assetapp.CreateAssignmentRequest, assetapp.UpdateAssignmentRequest](service,
			FilterParam{Name: "equipmentId", Kind: FilterUUID},
			FilterParam{Name: "userId", Kind: FilterUUID},
			FilterParam{Name: "status"},
		),
		service: service,
	}
}

// Return handles PUT /equipment-assignments/:id/return
func (h *AssignmentHandler) Return(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	resp, err := h.service.Return(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
