package alert

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/alert"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AlertResponse is an alert in API responses
type AlertResponse struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Type           string     `json:"type"`
	Severity       string     `json:"severity"`
	Status         string     `json:"status"`
	UserID         *uuid.UUID `json:"userId,omitempty"`
	EntityType     string     `json:"entityType,omitempty"`
	EntityID       *uuid.UUID `json:"entityId,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
	ResolvedAt     *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CreateAlertRequest is the body of POST /alerts
type CreateAlertRequest struct {
	Title      string            `json:"title" binding:"required,max=200"`
	Message    string            `json:"message" binding:"required"`
	Type       string            `json:"type" binding:"omitempty,oneof=maintenance license_expiry invoice_due contract_expiry general"`
	Severity   string            `json:"severity" binding:"omitempty,oneof=info warning critical"`
	UserID     *uuid.UUID        `json:"userId"`
	EntityType string            `json:"entityType" binding:"max=50"`
	EntityID   *uuid.UUID        `json:"entityId"`
	DueDate    *valueobject.Date `json:"dueDate"`
}

// UpdateAlertRequest is the body of PUT /alerts/:id. Status moves through
// the acknowledge and resolve endpoints.
type UpdateAlertRequest struct {
	Title      *string           `json:"title" binding:"omitempty,min=1,max=200"`
	Message    *string           `json:"message" binding:"omitempty,min=1"`
	Type       *string           `json:"type" binding:"omitempty,oneof=maintenance license_expiry invoice_due contract_expiry general"`
	Severity   *string           `json:"severity" binding:"omitempty,oneof=info warning critical"`
	UserID     *uuid.UUID        `json:"userId"`
	EntityType *string           `json:"entityType" binding:"omitempty,max=50"`
	EntityID   *uuid.UUID        `json:"entityId"`
	DueDate    *valueobject.Date `json:"dueDate"`
}

// ToAlertResponse converts an alert to its response DTO
func ToAlertResponse(a *alert.Alert) AlertResponse {
	return AlertResponse{
		ID:             a.ID,
		Title:          a.Title,
		Message:        a.Message,
		Type:           string(a.Type),
		Severity:       string(a.Severity),
		Status:         string(a.Status),
		UserID:         a.UserID,
		EntityType:     a.EntityType,
		EntityID:       a.EntityID,
		DueDate:        a.DueDate,
		AcknowledgedAt: a.AcknowledgedAt,
		ResolvedAt:     a.ResolvedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
