// Package document holds stored documents and the contracts that refer to them.
package document

import (
	"path"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
)

// Category classifies a document
type Category string

const (
	CategoryInvoice   Category = "invoice"
	CategoryContract  Category = "contract"
	CategoryHR        Category = "hr"
	CategoryTechnical Category = "technical"
	CategoryOther     Category = "other"
)

// Document is a file kept in object storage together with its metadata
type Document struct {
	shared.BaseEntity
	Title            string
	Description      string
	Category         Category
	Path             string // storage key
	FileName         string
	OriginalFileName string
	ContentType      string
	Size             int64
	UploadedBy       *uuid.UUID
}

// NewDocument creates a document record in the "other" category
func NewDocument(title, storagePath string) (*Document, error) {
	storagePath = strings.TrimSpace(storagePath)
	d := &Document{
		BaseEntity: shared.NewBaseEntity(),
		Title:      strings.TrimSpace(title),
		Path:       storagePath,
		FileName:   path.Base(storagePath),
		Category:   CategoryOther,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks required fields and the category
func (d *Document) Validate() error {
	if err := shared.FirstError(
		shared.Required("title", d.Title),
		shared.Required("path", d.Path),
		shared.OneOf("category", d.Category,
			CategoryInvoice, CategoryContract, CategoryHR, CategoryTechnical, CategoryOther),
	); err != nil {
		return err
	}
	if d.Size < 0 {
		return shared.NewValidationError("size", "size cannot be negative")
	}
	return nil
}

// DocumentRepository persists documents
type DocumentRepository interface {
	shared.Repository[Document]
}
