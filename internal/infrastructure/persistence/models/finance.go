package models

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankModel is the persistence model for the Bank domain entity.
type BankModel struct {
	BaseModel
	Name          string             `gorm:"type:varchar(200);not null"`
	Code          string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_banks_code"`
	AccountNumber string             `gorm:"type:varchar(100);not null"`
	IBAN          string             `gorm:"column:iban;type:varchar(50)"`
	SwiftCode     string             `gorm:"type:varchar(20)"`
	Branch        string             `gorm:"type:varchar(200)"`
	Currency      string             `gorm:"type:varchar(3);not null;default:'XAF'"`
	Balance       decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Status        finance.BankStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	ContactName   string             `gorm:"type:varchar(100)"`
	ContactEmail  string             `gorm:"type:varchar(200)"`
	ContactPhone  string             `gorm:"type:varchar(50)"`
	Notes         string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BankModel) TableName() string {
	return "banks"
}

// ToDomain converts the persistence model to a domain Bank entity.
func (m *BankModel) ToDomain() *finance.Bank {
	return &finance.Bank{
		BaseEntity:    m.BaseModel.entity(),
		Name:          m.Name,
		Code:          m.Code,
		AccountNumber: m.AccountNumber,
		IBAN:          m.IBAN,
		SwiftCode:     m.SwiftCode,
		Branch:        m.Branch,
		Currency:      m.Currency,
		Balance:       m.Balance,
		Status:        m.Status,
		ContactName:   m.ContactName,
		ContactEmail:  m.ContactEmail,
		ContactPhone:  m.ContactPhone,
		Notes:         m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Bank entity.
func (m *BankModel) FromDomain(b *finance.Bank) {
	m.setEntity(b.BaseEntity)
	m.Name = b.Name
	m.Code = b.Code
	m.AccountNumber = b.AccountNumber
	m.IBAN = b.IBAN
	m.SwiftCode = b.SwiftCode
	m.Branch = b.Branch
	m.Currency = b.Currency
	m.Balance = b.Balance
	m.Status = b.Status
	m.ContactName = b.ContactName
	m.ContactEmail = b.ContactEmail
	m.ContactPhone = b.ContactPhone
	m.Notes = b.Notes
}

// BankTransactionModel is the persistence model for the BankTransaction domain entity.
type BankTransactionModel struct {
	BaseModel
	BankID          uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Type            finance.TransactionType   `gorm:"type:varchar(20);not null;index"`
	Amount          decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	Reference       string                    `gorm:"type:varchar(100)"`
	Description     string                    `gorm:"type:text"`
	Counterparty    string                    `gorm:"type:varchar(200)"`
	TransactionDate time.Time                 `gorm:"not null;index"`
	Status          finance.TransactionStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (BankTransactionModel) TableName() string {
	return "bank_transactions"
}

// ToDomain converts the persistence model to a domain BankTransaction entity.
func (m *BankTransactionModel) ToDomain() *finance.BankTransaction {
	return &finance.BankTransaction{
		BaseEntity:      m.BaseModel.entity(),
		BankID:          m.BankID,
		Type:            m.Type,
		Amount:          m.Amount,
		Reference:       m.Reference,
		Description:     m.Description,
		Counterparty:    m.Counterparty,
		TransactionDate: m.TransactionDate,
		Status:          m.Status,
	}
}

// FromDomain populates the persistence model from a domain BankTransaction entity.
func (m *BankTransactionModel) FromDomain(t *finance.BankTransaction) {
	m.setEntity(t.BaseEntity)
	m.BankID = t.BankID
	m.Type = t.Type
	m.Amount = t.Amount
	m.Reference = t.Reference
	m.Description = t.Description
	m.Counterparty = t.Counterparty
	m.TransactionDate = t.TransactionDate
	m.Status = t.Status
}

// InvoiceModel is the persistence model for the Invoice domain entity.
type InvoiceModel struct {
	BaseModel
	InvoiceNumber string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_number"`
	ClientName    string                `gorm:"type:varchar(200);not null;index"`
	ClientEmail   string                `gorm:"type:varchar(200)"`
	ClientAddress string                `gorm:"type:text"`
	IssueDate     time.Time             `gorm:"not null;index"`
	DueDate       *time.Time            `gorm:"index"`
	Subtotal      decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	TaxRate       decimal.Decimal       `gorm:"type:decimal(5,2);not null;default:0"`
	TaxAmount     decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Total         decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Currency      string                `gorm:"type:varchar(3);not null;default:'XAF'"`
	Status        finance.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	PaidAt        *time.Time
	Notes         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *finance.Invoice {
	return &finance.Invoice{
		BaseEntity:    m.BaseModel.entity(),
		InvoiceNumber: m.InvoiceNumber,
		ClientName:    m.ClientName,
		ClientEmail:   m.ClientEmail,
		ClientAddress: m.ClientAddress,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		Subtotal:      m.Subtotal,
		TaxRate:       m.TaxRate,
		TaxAmount:     m.TaxAmount,
		Total:         m.Total,
		Currency:      m.Currency,
		Status:        m.Status,
		PaidAt:        m.PaidAt,
		Notes:         m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(i *finance.Invoice) {
	m.setEntity(i.BaseEntity)
	m.InvoiceNumber = i.InvoiceNumber
	m.ClientName = i.ClientName
	m.ClientEmail = i.ClientEmail
	m.ClientAddress = i.ClientAddress
	m.IssueDate = i.IssueDate
	m.DueDate = i.DueDate
	m.Subtotal = i.Subtotal
	m.TaxRate = i.TaxRate
	m.TaxAmount = i.TaxAmount
	m.Total = i.Total
	m.Currency = i.Currency
	m.Status = i.Status
	m.PaidAt = i.PaidAt
	m.Notes = i.Notes
}
