package finance

import (
	"strings"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

var hundred = decimal.NewFromInt(100)

// Invoice is an invoice issued to a client
type Invoice struct {
	shared.BaseEntity
	InvoiceNumber string
	ClientName    string
	ClientEmail   string
	ClientAddress string
	IssueDate     time.Time
	DueDate       *time.Time
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal // percent
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	Currency      string
	Status        InvoiceStatus
	PaidAt        *time.Time
	Notes         string
}

// NewInvoice creates a draft invoice
func NewInvoice(invoiceNumber, clientName string, issueDate time.Time) (*Invoice, error) {
	inv := &Invoice{
		BaseEntity:    shared.NewBaseEntity(),
		InvoiceNumber: strings.TrimSpace(invoiceNumber),
		ClientName:    strings.TrimSpace(clientName),
		IssueDate:     issueDate,
		Subtotal:      decimal.Zero,
		TaxRate:       decimal.Zero,
		Currency:      DefaultCurrency,
		Status:        InvoiceStatusDraft,
	}
	inv.Recalculate()
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

// Recalculate derives the tax amount and total from subtotal and tax rate.
// Amounts are rounded to 2 decimal places.
func (i *Invoice) Recalculate() {
	i.TaxAmount = i.Subtotal.Mul(i.TaxRate).Div(hundred).Round(2)
	i.Total = i.Subtotal.Add(i.TaxAmount).Round(2)
}

// ChangeStatus moves the invoice to status and reports whether it changed.
// Paying an invoice stamps PaidAt.
func (i *Invoice) ChangeStatus(status InvoiceStatus) (bool, error) {
	if err := validInvoiceStatus(status); err != nil {
		return false, err
	}
	if i.Status == status {
		return false, nil
	}
	if i.Status == InvoiceStatusCancelled {
		return false, shared.NewDomainError(shared.CodeInvalidState, "Cancelled invoices cannot change status")
	}
	i.Status = status
	if status == InvoiceStatusPaid {
		now := shared.Now()
		i.PaidAt = &now
	} else {
		i.PaidAt = nil
	}
	i.Touch()
	return true, nil
}

// IsOverdue reports whether an unpaid invoice is past its due date at now
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.DueDate == nil {
		return false
	}
	switch i.Status {
	case InvoiceStatusPaid, InvoiceStatusCancelled:
		return false
	}
	return now.After(*i.DueDate)
}

// Validate checks required fields, amounts and date order
func (i *Invoice) Validate() error {
	if err := shared.FirstError(
		shared.Required("invoiceNumber", i.InvoiceNumber),
		shared.Required("clientName", i.ClientName),
		validateCurrency(i.Currency),
		validInvoiceStatus(i.Status),
	); err != nil {
		return err
	}
	if i.IssueDate.IsZero() {
		return shared.NewValidationError("issueDate", "issueDate is required")
	}
	if i.DueDate != nil && i.DueDate.Before(i.IssueDate) {
		return shared.NewValidationError("dueDate", "dueDate must be on or after issueDate")
	}
	if i.Subtotal.IsNegative() {
		return shared.NewValidationError("subtotal", "subtotal cannot be negative")
	}
	if i.TaxRate.IsNegative() || i.TaxRate.GreaterThan(hundred) {
		return shared.NewValidationError("taxRate", "taxRate must be between 0 and 100")
	}
	return nil
}

func validInvoiceStatus(status InvoiceStatus) error {
	return shared.OneOf("status", status,
		InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled)
}

// InvoiceRepository persists invoices
type InvoiceRepository interface {
	shared.Repository[Invoice]
}
