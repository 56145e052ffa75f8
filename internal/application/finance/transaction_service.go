package finance

import (
	"context"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/finance"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionService manages bank transactions. Recording a transaction does
// not change the bank balance; balances are maintained on the bank record.
type TransactionService struct {
	*crud.Service[finance.BankTransaction, TransactionResponse]
	repo     finance.BankTransactionRepository
	bankRepo finance.BankRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(repo finance.BankTransactionRepository, bankRepo finance.BankRepository, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		Service:  crud.NewService[finance.BankTransaction, TransactionResponse](repo, "Bank transaction", ToTransactionResponse, logger),
		repo:     repo,
		bankRepo: bankRepo,
	}
}

// Create records a transaction on an existing bank
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	if req.Amount == nil {
		return nil, shared.NewValidationError("amount", "amount is required")
	}
	if err := crud.EnsureExists[finance.Bank](ctx, s.bankRepo, req.BankID, "Bank", "bankId"); err != nil {
		return nil, err
	}

	tx, err := finance.NewBankTransaction(req.BankID, finance.TransactionType(req.Type), *req.Amount)
	if err != nil {
		return nil, err
	}
	tx.Reference = req.Reference
	tx.Description = req.Description
	tx.Counterparty = req.Counterparty
	if d := req.TransactionDate.Ptr(); d != nil {
		tx.TransactionDate = *d
	}
	if req.Status != "" {
		tx.Status = finance.TransactionStatus(req.Status)
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	return s.Save(ctx, tx)
}

// Update changes the fields present in req. Moving a transaction to another
// bank checks that bank exists.
func (s *TransactionService) Update(ctx context.Context, id uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	tx, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BankID != nil && *req.BankID != tx.BankID {
		if err := crud.EnsureExists[finance.Bank](ctx, s.bankRepo, *req.BankID, "Bank", "bankId"); err != nil {
			return nil, err
		}
		tx.BankID = *req.BankID
	}
	crud.SetEnum(&tx.Type, req.Type)
	crud.Set(&tx.Amount, req.Amount)
	crud.SetTrimmed(&tx.Reference, req.Reference)
	crud.Set(&tx.Description, req.Description)
	crud.SetTrimmed(&tx.Counterparty, req.Counterparty)
	if d := req.TransactionDate.Ptr(); d != nil {
		tx.TransactionDate = *d
	}
	crud.SetEnum(&tx.Status, req.Status)

	if err := tx.Validate(); err != nil {
		return nil, err
	}
	tx.Touch()
	return s.Save(ctx, tx)
}

// ListByBank returns the transactions of one bank
func (s *TransactionService) ListByBank(ctx context.Context, bankID uuid.UUID, filter shared.Filter) (*shared.Paginated[TransactionResponse], error) {
	exists, err := s.bankRepo.ExistsByID(ctx, bankID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewNotFoundError("Bank")
	}
	return s.List(ctx, filter.With("bankId", bankID))
}
