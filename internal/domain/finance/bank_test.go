package finance

import (
	"errors"
	"testing"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBank(t *testing.T) {
	b, err := NewBank(" Afriland First Bank ", " afb ", "10005-00001-0123456789")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, "Afriland First Bank", b.Name)
	assert.Equal(t, "AFB", b.Code)
	assert.Equal(t, DefaultCurrency, b.Currency)
	assert.True(t, b.Balance.IsZero())
	assert.Equal(t, BankStatusActive, b.Status)
}

func TestNewBank_RequiredFields(t *testing.T) {
	tests := []struct {
		name, bankName, code, account, field string
	}{
		{"missing name", "", "AFB", "123", "name"},
		{"missing code", "Afriland", "  ", "123", "code"},
		{"missing account number", "Afriland", "AFB", "", "accountNumber"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBank(tt.bankName, tt.code, tt.account)
			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestBank_ValidateEnumsAndCurrency(t *testing.T) {
	b, err := NewBank("SGC", "SGC", "001")
	require.NoError(t, err)

	b.Status = "frozen"
	assert.Error(t, b.Validate())

	b.Status = BankStatusClosed
	b.Currency = "EURO"
	assert.Error(t, b.Validate())

	b.Currency = NormalizeCurrency(" eur ")
	assert.NoError(t, b.Validate())
}

func TestNewBankTransaction(t *testing.T) {
	bankID := uuid.New()

	tx, err := NewBankTransaction(bankID, TransactionTypeDeposit, decimal.NewFromInt(150000))
	require.NoError(t, err)
	assert.Equal(t, TransactionStatusPending, tx.Status)
	assert.False(t, tx.TransactionDate.IsZero())

	_, err = NewBankTransaction(bankID, TransactionTypeDeposit, decimal.Zero)
	assert.EqualError(t, err, "amount must be greater than 0")

	_, err = NewBankTransaction(bankID, TransactionTypeDeposit, decimal.NewFromInt(-5))
	assert.Error(t, err)

	_, err = NewBankTransaction(uuid.Nil, TransactionTypeDeposit, decimal.NewFromInt(5))
	assert.EqualError(t, err, "bankId is required")

	_, err = NewBankTransaction(bankID, "refund", decimal.NewFromInt(5))
	assert.Error(t, err)
}

func TestBankTransaction_SignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(1000)
	for txType, want := range map[TransactionType]string{
		TransactionTypeDeposit:    "1000",
		TransactionTypeInterest:   "1000",
		TransactionTypeWithdrawal: "-1000",
		TransactionTypeFee:        "-1000",
		TransactionTypeTransfer:   "-1000",
	} {
		tx := &BankTransaction{Type: txType, Amount: amount}
		assert.Equal(t, want, tx.SignedAmount().String(), string(txType))
	}
}
