package finance

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/finance"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ===================== Banks =====================

// BankResponse is a bank account in API responses
type BankResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	AccountNumber string          `json:"accountNumber"`
	IBAN          string          `json:"iban,omitempty"`
	SwiftCode     string          `json:"swiftCode,omitempty"`
	Branch        string          `json:"branch,omitempty"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
	ContactName   string          `json:"contactName,omitempty"`
	ContactEmail  string          `json:"contactEmail,omitempty"`
	ContactPhone  string          `json:"contactPhone,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CreateBankRequest is the body of POST /banks
type CreateBankRequest struct {
	Name          string           `json:"name" binding:"required,max=200"`
	Code          string           `json:"code" binding:"required,max=50"`
	AccountNumber string           `json:"accountNumber" binding:"required,max=100"`
	IBAN          string           `json:"iban" binding:"max=50"`
	SwiftCode     string           `json:"swiftCode" binding:"max=20"`
	Branch        string           `json:"branch" binding:"max=200"`
	Currency      string           `json:"currency" binding:"omitempty,len=3"`
	Balance       *decimal.Decimal `json:"balance"`
	Status        string           `json:"status" binding:"omitempty,oneof=active inactive closed"`
	ContactName   string           `json:"contactName" binding:"max=200"`
	ContactEmail  string           `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone  string           `json:"contactPhone" binding:"max=50"`
	Notes         string           `json:"notes"`
}

// UpdateBankRequest is the body of PUT /banks/:id; absent fields are kept
type UpdateBankRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Code          *string          `json:"code" binding:"omitempty,min=1,max=50"`
	AccountNumber *string          `json:"accountNumber" binding:"omitempty,min=1,max=100"`
	IBAN          *string          `json:"iban" binding:"omitempty,max=50"`
	SwiftCode     *string          `json:"swiftCode" binding:"omitempty,max=20"`
	Branch        *string          `json:"branch" binding:"omitempty,max=200"`
	Currency      *string          `json:"currency" binding:"omitempty,len=3"`
	Balance       *decimal.Decimal `json:"balance"`
	Status        *string          `json:"status" binding:"omitempty,oneof=active inactive closed"`
	ContactName   *string          `json:"contactName" binding:"omitempty,max=200"`
	ContactEmail  *string          `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone  *string          `json:"contactPhone" binding:"omitempty,max=50"`
	Notes         *string          `json:"notes"`
}

// ToBankResponse converts a bank to its response DTO
func ToBankResponse(b *finance.Bank) BankResponse {
	return BankResponse{
		ID:            b.ID,
		Name:          b.Name,
		Code:          b.Code,
		AccountNumber: b.AccountNumber,
		IBAN:          b.IBAN,
		SwiftCode:     b.SwiftCode,
		Branch:        b.Branch,
		Currency:      b.Currency,
		Balance:       b.Balance,
		Status:        string(b.Status),
		ContactName:   b.ContactName,
		ContactEmail:  b.ContactEmail,
		ContactPhone:  b.ContactPhone,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ===================== Bank transactions =====================

// TransactionResponse is a bank transaction in API responses
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	BankID          uuid.UUID       `json:"bankId"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Reference       string          `json:"reference,omitempty"`
	Description     string          `json:"description,omitempty"`
	Counterparty    string          `json:"counterparty,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CreateTransactionRequest is the body of POST /bank-transactions
type CreateTransactionRequest struct {
	BankID          uuid.UUID         `json:"bankId" binding:"required"`
	Type            string            `json:"type" binding:"required,oneof=deposit withdrawal transfer fee interest"`
	Amount          *decimal.Decimal  `json:"amount" binding:"required"`
	Reference       string            `json:"reference" binding:"max=100"`
	Description     string            `json:"description"`
	Counterparty    string            `json:"counterparty" binding:"max=200"`
	TransactionDate *valueobject.Date `json:"transactionDate"`
	Status          string            `json:"status" binding:"omitempty,oneof=pending completed cancelled"`
}

// UpdateTransactionRequest is the body of PUT /bank-transactions/:id
type UpdateTransactionRequest struct {
	BankID          *uuid.UUID        `json:"bankId"`
	Type            *string           `json:"type" binding:"omitempty,oneof=deposit withdrawal transfer fee interest"`
	Amount          *decimal.Decimal  `json:"amount"`
	Reference       *string           `json:"reference" binding:"omitempty,max=100"`
	Description     *string           `json:"description"`
	Counterparty    *string           `json:"counterparty" binding:"omitempty,max=200"`
	TransactionDate *valueobject.Date `json:"transactionDate"`
	Status          *string           `json:"status" binding:"omitempty,oneof=pending completed cancelled"`
}

// ToTransactionResponse converts a bank transaction to its response DTO
func ToTransactionResponse(t *finance.BankTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		BankID:          t.BankID,
		Type:            string(t.Type),
		Amount:          t.Amount,
		Reference:       t.Reference,
		Description:     t.Description,
		Counterparty:    t.Counterparty,
		TransactionDate: t.TransactionDate,
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ===================== Invoices =====================

// InvoiceResponse is an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ClientName    string          `json:"clientName"`
	ClientEmail   string          `json:"clientEmail,omitempty"`
	ClientAddress string          `json:"clientAddress,omitempty"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CreateInvoiceRequest is the body of POST /invoices
type CreateInvoiceRequest struct {
	InvoiceNumber string            `json:"invoiceNumber" binding:"required,max=50"`
	ClientName    string            `json:"clientName" binding:"required,max=200"`
	ClientEmail   string            `json:"clientEmail" binding:"omitempty,email"`
	ClientAddress string            `json:"clientAddress"`
	IssueDate     valueobject.Date  `json:"issueDate"`
	DueDate       *valueobject.Date `json:"dueDate"`
	Subtotal      *decimal.Decimal  `json:"subtotal"`
	TaxRate       *decimal.Decimal  `json:"taxRate"`
	Currency      string            `json:"currency" binding:"omitempty,len=3"`
	Status        string            `json:"status" binding:"omitempty,oneof=draft sent paid overdue cancelled"`
	Notes         string            `json:"notes"`
}

// UpdateInvoiceRequest is the body of PUT /invoices/:id
type UpdateInvoiceRequest struct {
	InvoiceNumber *string           `json:"invoiceNumber" binding:"omitempty,min=1,max=50"`
	ClientName    *string           `json:"clientName" binding:"omitempty,min=1,max=200"`
	ClientEmail   *string           `json:"clientEmail" binding:"omitempty,email"`
	ClientAddress *string           `json:"clientAddress"`
	IssueDate     *valueobject.Date `json:"issueDate"`
	DueDate       *valueobject.Date `json:"dueDate"`
	Subtotal      *decimal.Decimal  `json:"subtotal"`
	TaxRate       *decimal.Decimal  `json:"taxRate"`
	Currency      *string           `json:"currency" binding:"omitempty,len=3"`
	Status        *string           `json:"status" binding:"omitempty,oneof=draft sent paid overdue cancelled"`
	Notes         *string           `json:"notes"`
}

// ToInvoiceResponse converts an invoice to its response DTO
func ToInvoiceResponse(i *finance.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            i.ID,
		InvoiceNumber: i.InvoiceNumber,
		ClientName:    i.ClientName,
		ClientEmail:   i.ClientEmail,
		ClientAddress: i.ClientAddress,
		IssueDate:     i.IssueDate,
		DueDate:       i.DueDate,
		Subtotal:      i.Subtotal,
		TaxRate:       i.TaxRate,
		TaxAmount:     i.TaxAmount,
		Total:         i.Total,
		Currency:      i.Currency,
		Status:        string(i.Status),
		PaidAt:        i.PaidAt,
		Notes:         i.Notes,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
