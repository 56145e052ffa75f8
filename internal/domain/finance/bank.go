package finance

import (
	"fmt"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency assigned to new banks, invoices and contracts
const DefaultCurrency = "XAF"

// BankStatus represents the status of a bank account
type BankStatus string

const (
	BankStatusActive   BankStatus = "active"
	BankStatusInactive BankStatus = "inactive"
	BankStatusClosed   BankStatus = "closed"
)

// Bank is a bank account held by the company
type Bank struct {
	shared.BaseEntity
	Name          string
	Code          string
	AccountNumber string
	IBAN          string
	SwiftCode     string
	Branch        string
	Currency      string
	Balance       decimal.Decimal
	Status        BankStatus
	ContactName   string
	ContactEmail  string
	ContactPhone  string
	Notes         string
}

// NewBank creates an active bank account with a zero balance
func NewBank(name, code, accountNumber string) (*Bank, error) {
	b := &Bank{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          strings.TrimSpace(name),
		Code:          NormalizeCode(code),
		AccountNumber: strings.TrimSpace(accountNumber),
		Currency:      DefaultCurrency,
		Balance:       decimal.Zero,
		Status:        BankStatusActive,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks required fields and enumerations
func (b *Bank) Validate() error {
	return shared.FirstError(
		shared.Required("name", b.Name),
		shared.Required("code", b.Code),
		shared.Required("accountNumber", b.AccountNumber),
		validateCurrency(b.Currency),
		shared.OneOf("status", b.Status, BankStatusActive, BankStatusInactive, BankStatusClosed),
	)
}

// NormalizeCode upper-cases and trims a bank code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeCurrency upper-cases and trims an ISO 4217 code
func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

func validateCurrency(currency string) error {
	if len(currency) != 3 {
		return shared.NewValidationError("currency", fmt.Sprintf("currency must be a 3-letter ISO code, got %q", currency))
	}
	return nil
}

// BankRepository persists banks
type BankRepository interface {
	shared.Repository[Bank]
}
