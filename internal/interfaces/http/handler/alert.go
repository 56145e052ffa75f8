package handler

import (
	"context"

	alertapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/alert"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AlertService is the alert use case set
type AlertService interface {
	CRUDService[alertapp.AlertResponse, alertapp.CreateAlertRequest, alertapp.UpdateAlertRequest]
	Acknowledge(ctx context.Context, id uuid.UUID) (*alertapp.AlertResponse, error)
	Resolve(ctx context.Context, id uuid.UUID) (*alertapp.AlertResponse, error)
}

// AlertHandler serves /alerts
type AlertHandler struct {
	*CRUDHandler[alertapp.AlertResponse, alertapp.CreateAlertRequest, alertapp.UpdateAlertRequest]
	service AlertService
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(service AlertService) *AlertHandler {
	return &AlertHandler{
		CRUDHandler: NewCRUDHandler[alertapp.AlertResponse, alertapp.CreateAlertRequest, alertapp.UpdateAlertRequest](service,
			FilterParam{Name: "severity"},
			FilterParam{Name: "status"},
			FilterParam{Name: "type"},
			FilterParam{Name: "userId", Kind: FilterUUID},
		),
		service: service,
	}
}

// Acknowledge handles PUT /alerts/:id/acknowledge
func (h *AlertHandler) Acknowledge(c *gin.Context) {
	h.transition(c, h.service.Acknowledge)
}

// Resolve handles PUT /alerts/:id/resolve
func (h *AlertHandler) Resolve(c *gin.Context) {
	h.transition(c, h.service.Resolve)
}

func (h *AlertHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*alertapp.AlertResponse, error)) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	resp, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
