package persistence

import (
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/finance"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBankRepository implements finance.BankRepository using GORM
type GormBankRepository = GormRepository[finance.Bank, models.BankModel, *models.BankModel]

// NewGormBankRepository creates a new GormBankRepository
func NewGormBankRepository(db *gorm.DB) *GormBankRepository {
	return NewGormRepository[finance.Bank, models.BankModel](db, QueryOptions{
		SearchColumns: []string{"name", "code", "account_number", "branch"},
		FilterColumns: map[string]string{
			"status":   "status",
			"currency": "currency",
		},
		SortFields: BankSortFields,
	})
}

// GormBankTransactionRepository implements finance.BankTransactionRepository using GORM
type GormBankTransactionRepository = GormRepository[finance.BankTransaction, models.BankTransactionModel, *models.BankTransactionModel]

// NewGormBankTransactionRepository creates a new GormBankTransactionRepository
func NewGormBankTransactionRepository(db *gorm.DB) *GormBankTransactionRepository {
	return NewGormRepository[finance.BankTransaction, models.BankTransactionModel](db, QueryOptions{
		SearchColumns: []string{"reference", "description", "counterparty"},
		FilterColumns: map[string]string{
			"bankId":   "bank_id",
			"type":     "type",
			"status":   "status",
			"dateFrom": "transaction_date >= ?",
			"dateTo":   "transaction_date <= ?",
		},
		SortFields:  BankTransactionSortFields,
		DefaultSort: "transaction_date",
	})
}

// GormInvoiceRepository implements finance.InvoiceRepository using GORM
type GormInvoiceRepository = GormRepository[finance.Invoice, models.InvoiceModel, *models.InvoiceModel]

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return NewGormRepository[finance.Invoice, models.InvoiceModel](db, QueryOptions{
		SearchColumns: []string{"invoice_number", "client_name", "client_email"},
		FilterColumns: map[string]string{
			"status":     "status",
			"clientName": "client_name",
			"dateFrom":   "issue_date >= ?",
			"dateTo":     "issue_date <= ?",
			"dueBefore":  "due_date <= ?",
			"statusIn":   "status IN ?",
		},
		SortFields: InvoiceSortFields,
	})
}

var (
	_ finance.BankRepository            = (*GormBankRepository)(nil)
	_ finance.BankTransactionRepository = (*GormBankTransactionRepository)(nil)
	_ finance.InvoiceRepository         = (*GormInvoiceRepository)(nil)
)
