package document

import (
	"strings"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency assigned to new contracts
const DefaultCurrency = "XAF"

// ContractStatus represents the status of a contract
type ContractStatus string

const (
	ContractStatusDraft      ContractStatus = "draft"
	ContractStatusActive     ContractStatus = "active"
	ContractStatusExpired    ContractStatus = "expired"
	ContractStatusTerminated ContractStatus = "terminated"
)

// ContractType is the counterparty relationship of a contract
type ContractType string

const (
	ContractTypeClient     ContractType = "client"
	ContractTypeSupplier   ContractType = "supplier"
	ContractTypeEmployment ContractType = "employment"
	ContractTypeService    ContractType = "service"
	ContractTypeLease      ContractType = "lease"
)

// Contract is an agreement with a client, supplier, employee or landlord
type Contract struct {
	shared.BaseEntity
	ContractNumber string
	Title          string
	ContractType   ContractType
	PartyName      string
	PartyContact   string
	StartDate      time.Time
	EndDate        *time.Time
	Value          decimal.Decimal
	Currency       string
	Status         ContractStatus
	DocumentID     *uuid.UUID
	Notes          string
}

// NewContract creates a draft contract
func NewContract(contractNumber, title, partyName string, startDate time.Time) (*Contract, error) {
	c := &Contract{
		BaseEntity:     shared.NewBaseEntity(),
		ContractNumber: strings.ToUpper(strings.TrimSpace(contractNumber)),
		Title:          strings.TrimSpace(title),
		ContractType:   ContractTypeService,
		PartyName:      strings.TrimSpace(partyName),
		StartDate:      startDate,
		Value:          decimal.Zero,
		Currency:       DefaultCurrency,
		Status:         ContractStatusDraft,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks required fields, enumerations, value and date order
func (c *Contract) Validate() error {
	if err := shared.FirstError(
		shared.Required("contractNumber", c.ContractNumber),
		shared.Required("title", c.Title),
		shared.Required("partyName", c.PartyName),
		shared.OneOf("status", c.Status,
			ContractStatusDraft, ContractStatusActive, ContractStatusExpired, ContractStatusTerminated),
		shared.OneOf("contractType", c.ContractType,
			ContractTypeClient, ContractTypeSupplier, ContractTypeEmployment, ContractTypeService, ContractTypeLease),
	); err != nil {
		return err
	}
	if c.StartDate.IsZero() {
		return shared.NewValidationError("startDate", "startDate is required")
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return shared.NewValidationError("endDate", "endDate must be on or after startDate")
	}
	if c.Value.IsNegative() {
		return shared.NewValidationError("value", "value cannot be negative")
	}
	if len(c.Currency) != 3 {
		return shared.NewValidationError("currency", "currency must be a 3-letter ISO code")
	}
	return nil
}

// ContractRepository persists contracts
type ContractRepository interface {
	shared.Repository[Contract]
}
