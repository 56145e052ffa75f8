package asset

import (
	"strings"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LicenseStatus represents the status of a software license
type LicenseStatus string

const (
	LicenseStatusActive  LicenseStatus = "active"
	LicenseStatusExpired LicenseStatus = "expired"
	LicenseStatusRevoked LicenseStatus = "revoked"
)

// LicenseType is the commercial model of a license
type LicenseType string

const (
	LicenseTypePerpetual    LicenseType = "perpetual"
	LicenseTypeSubscription LicenseType = "subscription"
	LicenseTypeTrial        LicenseType = "trial"
	LicenseTypeOpenSource   LicenseType = "open_source"
)

// SoftwareLicense is a purchased software entitlement
type SoftwareLicense struct {
	shared.BaseEntity
	SoftwareName string
	Vendor       string
	LicenseKey   string
	LicenseType  LicenseType
	Seats        int
	PurchaseDate *time.Time
	ExpiryDate   *time.Time
	Cost         decimal.Decimal
	AssignedTo   *uuid.UUID // user
	Status       LicenseStatus
	Notes        string
}

// NewSoftwareLicense creates an active single-seat subscription
func NewSoftwareLicense(softwareName string) (*SoftwareLicense, error) {
	l := &SoftwareLicense{
		BaseEntity:   shared.NewBaseEntity(),
		SoftwareName: strings.TrimSpace(softwareName),
		LicenseType:  LicenseTypeSubscription,
		Seats:        1,
		Cost:         decimal.Zero,
		Status:       LicenseStatusActive,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks required fields, seats, cost and date order
func (l *SoftwareLicense) Validate() error {
	if err := shared.FirstError(
		shared.Required("softwareName", l.SoftwareName),
		shared.OneOf("status", l.Status, LicenseStatusActive, LicenseStatusExpired, LicenseStatusRevoked),
		shared.OneOf("licenseType", l.LicenseType,
			LicenseTypePerpetual, LicenseTypeSubscription, LicenseTypeTrial, LicenseTypeOpenSource),
	); err != nil {
		return err
	}
	if l.Seats < 1 {
		return shared.NewValidationError("seats", "seats must be at least 1")
	}
	if l.Cost.IsNegative() {
		return shared.NewValidationError("cost", "cost cannot be negative")
	}
	if l.PurchaseDate != nil && l.ExpiryDate != nil && l.ExpiryDate.Before(*l.PurchaseDate) {
		return shared.NewValidationError("expiryDate", "expiryDate must be on or after purchaseDate")
	}
	return nil
}

// ExpiresWithin reports whether an active license expires between now and now+d
func (l *SoftwareLicense) ExpiresWithin(now time.Time, d time.Duration) bool {
	if l.ExpiryDate == nil || l.Status != LicenseStatusActive {
		return false
	}
	return !l.ExpiryDate.Before(now) && l.ExpiryDate.Before(now.Add(d))
}

// SoftwareLicenseRepository persists software licenses
type SoftwareLicenseRepository interface {
	shared.Repository[SoftwareLicense]
}
