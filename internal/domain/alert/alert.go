// Package alert holds operational alerts raised for users.
package alert

import (
	"strings"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
)

// Severity is how urgent an alert is
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Status is the handling state of an alert
type Status string

const (
	StatusOpen         Status = "open"
	StatusAcknowledged Status = "acknowledged"
	StatusResolved     Status = "resolved"
)

// Type classifies what raised the alert
type Type string

const (
	TypeMaintenance    Type = "maintenance"
	TypeLicenseExpiry  Type = "license_expiry"
	TypeInvoiceDue     Type = "invoice_due"
	TypeContractExpiry Type = "contract_expiry"
	TypeGeneral        Type = "general"
)

// Alert is a notification that needs someone's attention
type Alert struct {
	shared.BaseEntity
	Title          string
	Message        string
	Type           Type
	Severity       Severity
	Status         Status
	UserID         *uuid.UUID
	EntityType     string
	EntityID       *uuid.UUID
	DueDate        *time.Time
	AcknowledgedAt *time.Time
	ResolvedAt     *time.Time
}

// NewAlert creates an open general alert with info severity
func NewAlert(title, message string) (*Alert, error) {
	a := &Alert{
		BaseEntity: shared.NewBaseEntity(),
		Title:      strings.TrimSpace(title),
		Message:    strings.TrimSpace(message),
		Type:       TypeGeneral,
		Severity:   SeverityInfo,
		Status:     StatusOpen,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks required fields and enumerations
func (a *Alert) Validate() error {
	return shared.FirstError(
		shared.Required("title", a.Title),
		shared.Required("message", a.Message),
		shared.OneOf("severity", a.Severity, SeverityInfo, SeverityWarning, SeverityCritical),
		shared.OneOf("status", a.Status, StatusOpen, StatusAcknowledged, StatusResolved),
		shared.OneOf("type", a.Type, TypeMaintenance, TypeLicenseExpiry, TypeInvoiceDue, TypeContractExpiry, TypeGeneral),
	)
}

// Acknowledge marks an open alert as seen
func (a *Alert) Acknowledge(now time.Time) error {
	if a.Status != StatusOpen {
		return shared.NewDomainError(shared.CodeInvalidState, "Only open alerts can be acknowledged")
	}
	a.Status = StatusAcknowledged
	a.AcknowledgedAt = &now
	a.Touch()
	return nil
}

// Resolve closes an alert. Resolving an open alert acknowledges it too.
func (a *Alert) Resolve(now time.Time) error {
	if a.Status == StatusResolved {
		return shared.NewDomainError(shared.CodeInvalidState, "Alert is already resolved")
	}
	if a.AcknowledgedAt == nil {
		a.AcknowledgedAt = &now
	}
	a.Status = StatusResolved
	a.ResolvedAt = &now
	a.Touch()
	return nil
}

// AlertRepository persists alerts
type AlertRepository interface {
	shared.Repository[Alert]
}

// EventTypeAlertCreated is published when an alert is raised
const EventTypeAlertCreated = "alert.created"

// CreatedEvent carries a newly raised alert
type CreatedEvent struct {
	shared.BaseDomainEvent
	Title    string     `json:"title"`
	Severity Severity   `json:"severity"`
	Type     Type       `json:"type"`
	UserID   *uuid.UUID `json:"userId,omitempty"`
}

// NewCreatedEvent builds the creation event for a
func NewCreatedEvent(a *Alert) *CreatedEvent {
	return &CreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAlertCreated, "Alert", a.ID),
		Title:           a.Title,
		Severity:        a.Severity,
		Type:            a.Type,
		UserID:          a.UserID,
	}
}
