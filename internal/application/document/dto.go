package document

import (
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/document"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ===================== Documents =====================

// DocumentResponse is a stored document in API responses
type DocumentResponse struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Category         string     `json:"category"`
	Path             string     `json:"path"`
	FileName         string     `json:"fileName"`
	OriginalFileName string     `json:"originalFileName,omitempty"`
	ContentType      string     `json:"contentType,omitempty"`
	Size             int64      `json:"size"`
	UploadedBy       *uuid.UUID `json:"uploadedBy,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CreateDocumentRequest is the body of POST /documents. Path is the key
// returned by the upload endpoint.
type CreateDocumentRequest struct {
	Title            string     `json:"title" binding:"required,max=255"`
	Description      string     `json:"description"`
	Category         string     `json:"category" binding:"omitempty,oneof=invoice contract hr technical other"`
	Path             string     `json:"path" binding:"required,max=500"`
	OriginalFileName string     `json:"originalFileName" binding:"max=255"`
	ContentType      string     `json:"contentType" binding:"max=150"`
	Size             int64      `json:"size" binding:"min=0"`
	UploadedBy       *uuid.UUID `json:"uploadedBy"`
}

// UpdateDocumentRequest is the body of PUT /documents/:id
type UpdateDocumentRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Category    *string `json:"category" binding:"omitempty,oneof=invoice contract hr technical other"`
}

// DownloadResponse is where a document can be fetched from
type DownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToDocumentResponse converts a document to its response DTO
func ToDocumentResponse(d *document.Document) DocumentResponse {
	return DocumentResponse{
		ID:               d.ID,
		Title:            d.Title,
		Description:      d.Description,
		Category:         string(d.Category),
		Path:             d.Path,
		FileName:         d.FileName,
		OriginalFileName: d.OriginalFileName,
		ContentType:      d.ContentType,
		Size:             d.Size,
		UploadedBy:       d.UploadedBy,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// ===================== Contracts =====================

// ContractResponse is a contract in API responses
type ContractResponse struct {
	ID             uuid.UUID       `json:"id"`
	ContractNumber string          `json:"contractNumber"`
	Title          string          `json:"title"`
	ContractType   string          `json:"contractType"`
	PartyName      string          `json:"partyName"`
	PartyContact   string          `json:"partyContact,omitempty"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	Value          decimal.Decimal `json:"value"`
	Currency       string          `json:"currency"`
	Status         string          `json:"status"`
	DocumentID     *uuid.UUID      `json:"documentId,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CreateContractRequest is the body of POST /contracts
type CreateContractRequest struct {
	ContractNumber string            `json:"contractNumber" binding:"required,max=50"`
	Title          string            `json:"title" binding:"required,max=255"`
	ContractType   string            `json:"contractType" binding:"omitempty,oneof=client supplier employment service lease"`
	PartyName      string            `json:"partyName" binding:"required,max=200"`
	PartyContact   string            `json:"partyContact" binding:"max=200"`
	StartDate      valueobject.Date  `json:"startDate" binding:"required"`
	EndDate        *valueobject.Date `json:"endDate"`
	Value          *decimal.Decimal  `json:"value"`
	Currency       string            `json:"currency" binding:"omitempty,len=3"`
	Status         string            `json:"status" binding:"omitempty,oneof=draft active expired terminated"`
	DocumentID     *uuid.UUID        `json:"documentId"`
	Notes          string            `json:"notes"`
}

// UpdateContractRequest is the body of PUT /contracts/:id
type UpdateContractRequest struct {
	ContractNumber *string           `json:"contractNumber" binding:"omitempty,min=1,max=50"`
	Title          *string           `json:"title" binding:"omitempty,min=1,max=255"`
	ContractType   *string           `json:"contractType" binding:"omitempty,oneof=client supplier employment service lease"`
	PartyName      *string           `json:"partyName" binding:"omitempty,min=1,max=200"`
	PartyContact   *string           `json:"partyContact" binding:"omitempty,max=200"`
	StartDate      *valueobject.Date `json:"startDate"`
	EndDate        *valueobject.Date `json:"endDate"`
	Value          *decimal.Decimal  `json:"value"`
	Currency       *string           `json:"currency" binding:"omitempty,len=3"`
	Status         *string           `json:"status" binding:"omitempty,oneof=draft active expired terminated"`
	DocumentID     *uuid.UUID        `json:"documentId"`
	Notes          *string           `json:"notes"`
}

// ToContractResponse converts a contract to its response DTO
func ToContractResponse(c *document.Contract) ContractResponse {
	return ContractResponse{
		ID:             c.ID,
		ContractNumber: c.ContractNumber,
		Title:          c.Title,
		ContractType:   string(c.ContractType),
		PartyName:      c.PartyName,
		PartyContact:   c.PartyContact,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		Value:          c.Value,
		Currency:       c.Currency,
		Status:         string(c.Status),
		DocumentID:     c.DocumentID,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ===================== Upload =====================

// UploadInput is a file extracted from a multipart body
type UploadInput struct {
	Data             []byte
	OriginalFileName string
	ContentType      string
	UploadedBy       *uuid.UUID
	// Title, when set, also records a Document for the stored file
	Title       string
	Description string
	Category    string
}

// UploadResponse is the body returned by the upload endpoints
type UploadResponse struct {
	Success          bool              `json:"success"`
	Path             string            `json:"path"`
	FileName         string            `json:"fileName"`
	OriginalFileName string            `json:"originalFileName"`
	ContentType      string            `json:"contentType"`
	Size             int64             `json:"size"`
	URL              string            `json:"url,omitempty"`
	Document         *DocumentResponse `json:"document,omitempty"`
}
