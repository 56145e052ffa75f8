package handler

import (
	"context"

	financeapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/finance"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BankTransactionLister lists the transactions of one bank
type BankTransactionLister interface {
	ListByBank(ctx context.Context, bankID uuid.UUID, filter shared.Filter) (*shared.Paginated[financeapp.TransactionResponse], error)
}

// BankHandler serves /banks and the transactions of a bank
type BankHandler struct {
	*CRUDHandler[financeapp.BankResponse, financeapp.CreateBankRequest, financeapp.UpdateBankRequest]
	transactions BankTransactionLister
	txFilters    []FilterParam
}

// NewBankHandler creates a new BankHandler
func NewBankHandler(
	banks CRUDService[financeapp.BankResponse, financeapp.CreateBankRequest, financeapp.UpdateBankRequest],
	transactions BankTransactionLister,
) *BankHandler {
	return &BankHandler{
		CRUDHandler: NewCRUDHandler(banks,
			FilterParam{Name: "status"},
			FilterParam{Name: "currency"},
		),
		transactions: transactions,
		txFilters: []FilterParam{
			{Name: "type"},
			{Name: "status"},
			{Name: "dateFrom", Kind: FilterDate},
			{Name: "dateTo", Kind: FilterDateEnd},
		},
	}
}

// ListTransactions handles GET /banks/:id/transactions
func (h *BankHandler) ListTransactions(c *gin.Context) {
	bankID, ok := h.ParseID(c)
	if !ok {
		return
	}
	filter, ok := h.parseFilter(c, h.txFilters)
	if !ok {
		return
	}

	page, err := h.transactions.ListByBank(c.Request.Context(), bankID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.BaseHandler.List(c, page.Items, page.Total, page.Page, page.PageSize)
}

// TransactionHandler serves /bank-transactions
type TransactionHandler = CRUDHandler[financeapp.TransactionResponse, financeapp.CreateTransactionRequest, financeapp.UpdateTransactionRequest]

// NewTransactionHandler creates a handler for bank transactions
func NewTransactionHandler(service CRUDService[financeapp.TransactionResponse, financeapp.CreateTransactionRequest, financeapp.UpdateTransactionRequest]) *TransactionHandler {
	return NewCRUDHandler(service,
		FilterParam{Name: "bankId", Kind: FilterUUID},
		FilterParam{Name: "type"},
		FilterParam{Name: "status"},
		FilterParam{Name: "dateFrom", Kind: FilterDate},
		FilterParam{Name: "dateTo", Kind: FilterDateEnd},
	)
}

// InvoiceHandler serves /invoices
type InvoiceHandler = CRUDHandler[financeapp.InvoiceResponse, financeapp.CreateInvoiceRequest, financeapp.UpdateInvoiceRequest]

// NewInvoiceHandler creates a handler for invoices
func NewInvoiceHandler(service CRUDService[financeapp.InvoiceResponse, financeapp.CreateInvoiceRequest, financeapp.UpdateInvoiceRequest]) *InvoiceHandler {
	return NewCRUDHandler(service,
		FilterParam{Name: "status"},
		FilterParam{Name: "clientName"},
		FilterParam{Name: "dateFrom", Kind: FilterDate},
		FilterParam{Name: "dateTo", Kind: FilterDateEnd},
	)
}
