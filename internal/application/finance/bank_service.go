// Package finance implements the bank, bank transaction and invoice use cases.
package finance

import (
	"context"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/finance"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BankService manages bank accounts
type BankService struct {
	*crud.Service[finance.Bank, BankResponse]
	repo finance.BankRepository
}

// NewBankService creates a new BankService
func NewBankService(repo finance.BankRepository, logger *zap.Logger) *BankService {
	return &BankService{
		Service: crud.NewService[finance.Bank, BankResponse](repo, "Bank", ToBankResponse, logger),
		repo:    repo,
	}
}

// Create opens a new bank account. Codes are unique.
func (s *BankService) Create(ctx context.Context, req CreateBankRequest) (*BankResponse, error) {
	code := finance.NormalizeCode(req.Code)
	if err := crud.EnsureUnique[finance.Bank](ctx, s.repo, "code", code, nil, "Bank", "code"); err != nil {
		return nil, err
	}

	bank, err := finance.NewBank(req.Name, code, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	bank.IBAN = req.IBAN
	bank.SwiftCode = req.SwiftCode
	bank.Branch = req.Branch
	bank.Currency = finance.NormalizeCurrency(crud.OrDefault(req.Currency, finance.DefaultCurrency))
	if req.Balance != nil {
		bank.Balance = *req.Balance
	}
	if req.Status != "" {
		bank.Status = finance.BankStatus(req.Status)
	}
	bank.ContactName = req.ContactName
	bank.ContactEmail = req.ContactEmail
	bank.ContactPhone = req.ContactPhone
	bank.Notes = req.Notes
	if err := bank.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.Save(ctx, bank)
	if err != nil {
		return nil, err
	}
	s.Logger().Info("Bank created", zap.String("bank_id", bank.ID.String()), zap.String("code", bank.Code))
	return resp, nil
}

// Update changes the fields present in req
func (s *BankService) Update(ctx context.Context, id uuid.UUID, req UpdateBankRequest) (*BankResponse, error) {
	bank, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		code := finance.NormalizeCode(*req.Code)
		if code != bank.Code {
			if err := crud.EnsureUnique[finance.Bank](ctx, s.repo, "code", code, &bank.ID, "Bank", "code"); err != nil {
				return nil, err
			}
		}
		bank.Code = code
	}
	crud.SetTrimmed(&bank.Name, req.Name)
	crud.SetTrimmed(&bank.AccountNumber, req.AccountNumber)
	crud.SetTrimmed(&bank.IBAN, req.IBAN)
	crud.SetTrimmed(&bank.SwiftCode, req.SwiftCode)
	crud.SetTrimmed(&bank.Branch, req.Branch)
	if req.Currency != nil {
		bank.Currency = finance.NormalizeCurrency(*req.Currency)
	}
	crud.Set(&bank.Balance, req.Balance)
	crud.SetEnum(&bank.Status, req.Status)
	crud.SetTrimmed(&bank.ContactName, req.ContactName)
	crud.SetTrimmed(&bank.ContactEmail, req.ContactEmail)
	crud.SetTrimmed(&bank.ContactPhone, req.ContactPhone)
	crud.Set(&bank.Notes, req.Notes)

	if err := bank.Validate(); err != nil {
		return nil, err
	}
	bank.Touch()
	return s.Save(ctx, bank)
}
