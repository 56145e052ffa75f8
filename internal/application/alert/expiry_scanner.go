package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/alert"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/asset"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/document"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/finance"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entity types recorded on alerts raised by the expiry scan
const (
	EntityLicense  = "software_license"
	EntityContract = "contract"
	EntityInvoice  = "invoice"
	EntityVehicle  = "vehicle"
)

// AlertCreator raises a single alert
type AlertCreator interface {
	Create(ctx context.Context, req CreateAlertRequest) (*AlertResponse, error)
}

// ScanResult counts what one expiry scan did
type ScanResult struct {
	Raised  int
	Skipped int
}

// ExpiryScanner raises alerts for licenses, contracts, vehicle insurance and
// invoices whose deadline falls within the lead time. A record that already
// has an unresolved alert of the same type and due date is skipped, so the
// scan can run repeatedly.
type ExpiryScanner struct {
	alerts    alert.AlertRepository
	creator   AlertCreator
	licenses  asset.SoftwareLicenseRepository
	vehicles  asset.VehicleRepository
	contracts document.ContractRepository
	invoices  finance.InvoiceRepository
	leadTime  time.Duration
	logger    *zap.Logger
}

// NewExpiryScanner creates a new ExpiryScanner
func NewExpiryScanner(
	alerts alert.AlertRepository,
	creator AlertCreator,
	licenses asset.SoftwareLicenseRepository,
	vehicles asset.VehicleRepository,
	contracts document.ContractRepository,
	invoices finance.InvoiceRepository,
	leadTime time.Duration,
	logger *zap.Logger,
) *ExpiryScanner {
	return &ExpiryScanner{
		alerts:    alerts,
		creator:   creator,
		licenses:  licenses,
		vehicles:  vehicles,
		contracts: contracts,
		invoices:  invoices,
		leadTime:  leadTime,
		logger:    logger,
	}
}

// candidate is one deadline found by a scan
type candidate struct {
	alertType  alert.Type
	entityType string
	entityID   uuid.UUID
	userID     *uuid.UUID
	due        time.Time
	title      string
	message    string
}

// Scan checks every source once at now
func (s *ExpiryScanner) Scan(ctx context.Context, now time.Time) (ScanResult, error) {
	var res ScanResult
	horizon := now.Add(s.leadTime)

	sources := []struct {
		name string
		find func(context.Context, time.Time, time.Time) ([]candidate, error)
	}{
		{"licenses", s.expiringLicenses},
		{"contracts", s.endingContracts},
		{"vehicles", s.expiringInsurance},
		{"invoices", s.dueInvoices},
	}
	for _, src := range sources {
		found, err := src.find(ctx, now, horizon)
		if err != nil {
			return res, fmt.Errorf("failed to scan %s: %w", src.name, err)
		}
		for _, c := range found {
			raised, err := s.raise(ctx, c, now)
			if err != nil {
				return res, err
			}
			if raised {
				res.Raised++
			} else {
				res.Skipped++
			}
		}
	}

	s.logger.Info("Expiry scan finished",
		zap.Int("raised", res.Raised),
		zap.Int("skipped", res.Skipped),
		zap.Time("horizon", horizon),
	)
	return res, nil
}

func (s *ExpiryScanner) raise(ctx context.Context, c candidate, now time.Time) (bool, error) {
	exists, err := s.hasOpenAlert(ctx, c)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	severity := alert.SeverityWarning
	if !c.due.After(now) {
		severity = alert.SeverityCritical
	}
	entityID := c.entityID
	_, err = s.creator.Create(ctx, CreateAlertRequest{
		Title:      c.title,
		Message:    c.message,
		Type:       string(c.alertType),
		Severity:   string(severity),
		UserID:     c.userID,
		EntityType: c.entityType,
		EntityID:   &entityID,
		DueDate:    &valueobject.Date{Time: c.due},
	})
	if err != nil {
		return false, fmt.Errorf("failed to raise %s alert for %s %s: %w", c.alertType, c.entityType, c.entityID, err)
	}
	return true, nil
}

func (s *ExpiryScanner) hasOpenAlert(ctx context.Context, c candidate) (bool, error) {
	filter := shared.DefaultFilter().
		With("type", string(c.alertType)).
		With("entityId", c.entityID)
	filter.PageSize = shared.MaxPageSize
	existing, err := s.alerts.FindAll(ctx, filter)
	if err != nil {
		return false, err
	}
	for _, a := range existing {
		if a.Status == alert.StatusResolved || a.DueDate == nil {
			continue
		}
		if sameDay(*a.DueDate, c.due) {
			return true, nil
		}
	}
	return false, nil
}

func (s *ExpiryScanner) expiringLicenses(ctx context.Context, now, horizon time.Time) ([]candidate, error) {
	filter := shared.DefaultFilter().
		With("status", string(asset.LicenseStatusActive)).
		With("expiresBefore", horizon)
	licenses, err := findAll(ctx, s.licenses, filter)
	if err != nil {
		return nil, err
	}
	out := make([]candidate, 0, len(licenses))
	for _, l := range licenses {
		if l.ExpiryDate == nil {
			continue
		}
		out = append(out, candidate{
			alertType:  alert.TypeLicenseExpiry,
			entityType: EntityLicense,
			entityID:   l.ID,
			userID:     l.AssignedTo,
			due:        *l.ExpiryDate,
			title:      "License expiring: " + l.SoftwareName,
			message:    deadlineMessage("The "+l.SoftwareName+" license", "expires", *l.ExpiryDate, now),
		})
	}
	return out, nil
}

func (s *ExpiryScanner) endingContracts(ctx context.Context, now, horizon time.Time) ([]candidate, error) {
	filter := shared.DefaultFilter().
		With("status", string(document.ContractStatusActive)).
		With("endsBefore", horizon)
	contracts, err := findAll(ctx, s.contracts, filter)
	if err != nil {
		return nil, err
	}
	out := make([]candidate, 0, len(contracts))
	for _, c := range contracts {
		if c.EndDate == nil {
			continue
		}
		out = append(out, candidate{
			alertType:  alert.TypeContractExpiry,
			entityType: EntityContract,
			entityID:   c.ID,
			due:        *c.EndDate,
			title:      "Contract ending: " + c.ContractNumber,
			message:    deadlineMessage("Contract "+c.ContractNumber+" ("+c.Title+")", "ends", *c.EndDate, now),
		})
	}
	return out, nil
}

func (s *ExpiryScanner) expiringInsurance(ctx context.Context, now, horizon time.Time) ([]candidate, error) {
	vehicles, err := findAll(ctx, s.vehicles, shared.DefaultFilter().With("insuranceBefore", horizon))
	if err != nil {
		return nil, err
	}
	out := make([]candidate, 0, len(vehicles))
	for _, v := range vehicles {
		if v.InsuranceExpiry == nil || v.Status == asset.VehicleStatusOutOfService {
			continue
		}
		out = append(out, candidate{
			alertType:  alert.TypeMaintenance,
			entityType: EntityVehicle,
			entityID:   v.ID,
			due:        *v.InsuranceExpiry,
			title:      "Vehicle insurance expiring: " + v.PlateNumber,
			message:    deadlineMessage("Insurance for vehicle "+v.PlateNumber, "expires", *v.InsuranceExpiry, now),
		})
	}
	return out, nil
}

func (s *ExpiryScanner) dueInvoices(ctx context.Context, now, horizon time.Time) ([]candidate, error) {
	filter := shared.DefaultFilter().
		With("statusIn", []string{string(finance.InvoiceStatusSent), string(finance.InvoiceStatusOverdue)}).
		With("dueBefore", horizon)
	invoices, err := findAll(ctx, s.invoices, filter)
	if err != nil {
		return nil, err
	}
	out := make([]candidate, 0, len(invoices))
	for _, i := range invoices {
		if i.DueDate == nil {
			continue
		}
		out = append(out, candidate{
			alertType:  alert.TypeInvoiceDue,
			entityType: EntityInvoice,
			entityID:   i.ID,
			due:        *i.DueDate,
			title:      "Invoice due: " + i.InvoiceNumber,
			message:    deadlineMessage("Invoice "+i.InvoiceNumber+" for "+i.ClientName, "is due", *i.DueDate, now),
		})
	}
	return out, nil
}

// findAll walks every page of filter in creation order
func findAll[T any](ctx context.Context, repo shared.Repository[T], filter shared.Filter) ([]T, error) {
	filter.PageSize = shared.MaxPageSize
	filter.OrderBy = "created_at"
	filter.OrderDir = "asc"

	var all []T
	for page := 1; ; page++ {
		filter.Page = page
		items, err := repo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < filter.PageSize {
			return all, nil
		}
	}
}

func deadlineMessage(subject, verb string, due, now time.Time) string {
	date := due.Format(time.DateOnly)
	if due.Before(now) {
		past := map[string]string{"expires": "expired", "ends": "ended", "is due": "was due"}[verb]
		return fmt.Sprintf("%s %s on %s.", subject, past, date)
	}
	return fmt.Sprintf("%s %s on %s.", subject, verb, date)
}

func sameDay(a, b time.Time) bool {
	return a.Format(time.DateOnly) == b.Format(time.DateOnly)
}
