package document

import (
	"context"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/document"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/finance"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContractService manages contracts
type ContractService struct {
	*crud.Service[document.Contract, ContractResponse]
	repo         document.ContractRepository
	documentRepo document.DocumentRepository
}

// NewContractService creates a new ContractService
func NewContractService(repo document.ContractRepository, documentRepo document.DocumentRepository, logger *zap.Logger) *ContractService {
	return &ContractService{
		Service:      crud.NewService[document.Contract, ContractResponse](repo, "Contract", ToContractResponse, logger),
		repo:         repo,
		documentRepo: documentRepo,
	}
}

// Create records a contract. Contract numbers are unique and the attached
// document, when given, must exist.
func (s *ContractService) Create(ctx context.Context, req CreateContractRequest) (*ContractResponse, error) {
	number := normalizeContractNumber(req.ContractNumber)
	if err := crud.EnsureUnique[document.Contract](ctx, s.repo, "contract_number", number, nil, "Contract", "contractNumber"); err != nil {
		return nil, err
	}
	if err := crud.EnsureOptionalExists[document.Document](ctx, s.documentRepo, req.DocumentID, "Document", "documentId"); err != nil {
		return nil, err
	}

	c, err := document.NewContract(number, req.Title, req.PartyName, req.StartDate.Time)
	if err != nil {
		return nil, err
	}
	if req.ContractType != "" {
		c.ContractType = document.ContractType(req.ContractType)
	}
	c.PartyContact = strings.TrimSpace(req.PartyContact)
	c.EndDate = req.EndDate.Ptr()
	crud.Set(&c.Value, req.Value)
	c.Currency = finance.NormalizeCurrency(crud.OrDefault(req.Currency, document.DefaultCurrency))
	if req.Status != "" {
		c.Status = document.ContractStatus(req.Status)
	}
	c.DocumentID = req.DocumentID
	c.Notes = req.Notes
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return s.Save(ctx, c)
}

// Update changes the fields present in req
func (s *ContractService) Update(ctx context.Context, id uuid.UUID, req UpdateContractRequest) (*ContractResponse, error) {
	c, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ContractNumber != nil {
		number := normalizeContractNumber(*req.ContractNumber)
		if number != c.ContractNumber {
			if err := crud.EnsureUnique[document.Contract](ctx, s.repo, "contract_number", number, &c.ID, "Contract", "contractNumber"); err != nil {
				return nil, err
			}
		}
		c.ContractNumber = number
	}
	if req.DocumentID != nil {
		if err := crud.EnsureOptionalExists[document.Document](ctx, s.documentRepo, req.DocumentID, "Document", "documentId"); err != nil {
			return nil, err
		}
		c.DocumentID = req.DocumentID
	}
	crud.SetTrimmed(&c.Title, req.Title)
	crud.SetEnum(&c.ContractType, req.ContractType)
	crud.SetTrimmed(&c.PartyName, req.PartyName)
	crud.SetTrimmed(&c.PartyContact, req.PartyContact)
	if req.StartDate != nil {
		c.StartDate = req.StartDate.Time
	}
	crud.SetDate(&c.EndDate, req.EndDate)
	crud.Set(&c.Value, req.Value)
	if req.Currency != nil {
		c.Currency = finance.NormalizeCurrency(*req.Currency)
	}
	crud.SetEnum(&c.Status, req.Status)
	crud.Set(&c.Notes, req.Notes)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.Touch()
	return s.Save(ctx, c)
}

func normalizeContractNumber(n string) string {
	return strings.ToUpper(strings.TrimSpace(n))
}
