package finance

import (
	"context"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/finance"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService manages invoices and announces status changes
type InvoiceService struct {
	*crud.Service[finance.Invoice, InvoiceResponse]
	repo      finance.InvoiceRepository
	publisher shared.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(repo finance.InvoiceRepository, publisher shared.EventPublisher, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		Service:   crud.NewService[finance.Invoice, InvoiceResponse](repo, "Invoice", ToInvoiceResponse, logger),
		repo:      repo,
		publisher: publisher,
	}
}

// Create issues a new invoice. Invoice numbers are unique.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	number := strings.TrimSpace(req.InvoiceNumber)
	if err := crud.EnsureUnique[finance.Invoice](ctx, s.repo, "invoice_number", number, nil, "Invoice", "invoiceNumber"); err != nil {
		return nil, err
	}

	inv, err := finance.NewInvoice(number, req.ClientName, req.IssueDate.Time)
	if err != nil {
		return nil, err
	}
	inv.ClientEmail = strings.TrimSpace(req.ClientEmail)
	inv.ClientAddress = req.ClientAddress
	inv.DueDate = req.DueDate.Ptr()
	crud.Set(&inv.Subtotal, req.Subtotal)
	crud.Set(&inv.TaxRate, req.TaxRate)
	inv.Currency = finance.NormalizeCurrency(crud.OrDefault(req.Currency, finance.DefaultCurrency))
	inv.Notes = req.Notes
	inv.Recalculate()
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if req.Status != "" {
		if _, err := inv.ChangeStatus(finance.InvoiceStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	return s.Save(ctx, inv)
}

// Update changes the fields present in req. A status change publishes
// invoice.status_changed once the invoice is saved.
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.InvoiceNumber != nil {
		number := strings.TrimSpace(*req.InvoiceNumber)
		if number != inv.InvoiceNumber {
			if err := crud.EnsureUnique[finance.Invoice](ctx, s.repo, "invoice_number", number, &inv.ID, "Invoice", "invoiceNumber"); err != nil {
				return nil, err
			}
		}
		inv.InvoiceNumber = number
	}
	crud.SetTrimmed(&inv.ClientName, req.ClientName)
	crud.SetTrimmed(&inv.ClientEmail, req.ClientEmail)
	crud.Set(&inv.ClientAddress, req.ClientAddress)
	if req.IssueDate != nil && !req.IssueDate.IsZero() {
		inv.IssueDate = req.IssueDate.Time
	}
	crud.SetDate(&inv.DueDate, req.DueDate)
	crud.Set(&inv.Subtotal, req.Subtotal)
	crud.Set(&inv.TaxRate, req.TaxRate)
	if req.Currency != nil {
		inv.Currency = finance.NormalizeCurrency(*req.Currency)
	}
	crud.Set(&inv.Notes, req.Notes)
	inv.Recalculate()
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	oldStatus := inv.Status
	changed := false
	if req.Status != nil {
		changed, err = inv.ChangeStatus(finance.InvoiceStatus(*req.Status))
		if err != nil {
			return nil, err
		}
	}

	inv.Touch()
	resp, err := s.Save(ctx, inv)
	if err != nil {
		return nil, err
	}

	if changed {
		s.Logger().Info("Invoice status changed",
			zap.String("invoice_id", inv.ID.String()),
			zap.String("from", string(oldStatus)),
			zap.String("to", string(inv.Status)),
		)
		crud.Publish(ctx, s.publisher, s.Logger(), finance.EventTypeInvoiceStatusChanged,
			finance.NewInvoiceStatusChangedEvent(inv, oldStatus))
	}
	return resp, nil
}
