package finance

import (
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
)

// EventTypeInvoiceStatusChanged is published when an invoice moves between statuses
const EventTypeInvoiceStatusChanged = "invoice.status_changed"

// InvoiceStatusChangedEvent carries an invoice status transition
type InvoiceStatusChangedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string        `json:"invoiceNumber"`
	OldStatus     InvoiceStatus `json:"oldStatus"`
	NewStatus     InvoiceStatus `json:"newStatus"`
	Total         string        `json:"total"`
	Currency      string        `json:"currency"`
}

// NewInvoiceStatusChangedEvent builds the event for inv after a change from old
func NewInvoiceStatusChangedEvent(inv *Invoice, old InvoiceStatus) *InvoiceStatusChangedEvent {
	return &InvoiceStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceStatusChanged, "Invoice", inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		OldStatus:       old,
		NewStatus:       inv.Status,
		Total:           inv.Total.StringFixed(2),
		Currency:        inv.Currency,
	}
}
