package finance

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a bank transaction
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
	TransactionTypeFee        TransactionType = "fee"
	TransactionTypeInterest   TransactionType = "interest"
)

// TransactionStatus represents the status of a bank transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// BankTransaction is a movement on a bank account
type BankTransaction struct {
	shared.BaseEntity
	BankID          uuid.UUID
	Type            TransactionType
	Amount          decimal.Decimal
	Reference       string
	Description     string
	Counterparty    string
	TransactionDate time.Time
	Status          TransactionStatus
}

// NewBankTransaction creates a pending transaction dated now
func NewBankTransaction(bankID uuid.UUID, txType TransactionType, amount decimal.Decimal) (*BankTransaction, error) {
	tx := &BankTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		BankID:          bankID,
		Type:            txType,
		Amount:          amount,
		TransactionDate: shared.Now(),
		Status:          TransactionStatusPending,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// Validate checks the bank reference, the amount and the enumerations
func (t *BankTransaction) Validate() error {
	if t.BankID == uuid.Nil {
		return shared.NewValidationError("bankId", "bankId is required")
	}
	if !t.Amount.IsPositive() {
		return shared.NewValidationError("amount", "amount must be greater than 0")
	}
	return shared.FirstError(
		shared.OneOf("type", t.Type,
			TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer,
			TransactionTypeFee, TransactionTypeInterest),
		shared.OneOf("status", t.Status,
			TransactionStatusPending, TransactionStatusCompleted, TransactionStatusCancelled),
	)
}

// SignedAmount returns the amount with the sign it has on the balance
func (t *BankTransaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case TransactionTypeWithdrawal, TransactionTypeFee, TransactionTypeTransfer:
		return t.Amount.Neg()
	default:
		return t.Amount
	}
}

// BankTransactionRepository persists bank transactions
type BankTransactionRepository interface {
	shared.Repository[BankTransaction]
}
