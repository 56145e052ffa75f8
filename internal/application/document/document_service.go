// Package document implements the document, contract and upload use cases.
package document

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/document"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultDownloadURLExpiry is used when the service is built without one
const DefaultDownloadURLExpiry = 15 * time.Minute

// DocumentService manages document records and their stored files
type DocumentService struct {
	*crud.Service[document.Document, DocumentResponse]
	repo      document.DocumentRepository
	userRepo  identity.UserRepository
	storage   ObjectStorage
	urlExpiry time.Duration
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	repo document.DocumentRepository,
	userRepo identity.UserRepository,
	storage ObjectStorage,
	urlExpiry time.Duration,
	logger *zap.Logger,
) *DocumentService {
	if urlExpiry <= 0 {
		urlExpiry = DefaultDownloadURLExpiry
	}
	return &DocumentService{
		Service:   crud.NewService[document.Document, DocumentResponse](repo, "Document", ToDocumentResponse, logger),
		repo:      repo,
		userRepo:  userRepo,
		storage:   storage,
		urlExpiry: urlExpiry,
	}
}

// Create records a document for a file that is already stored
func (s *DocumentService) Create(ctx context.Context, req CreateDocumentRequest) (*DocumentResponse, error) {
	if err := crud.EnsureOptionalExists[identity.User](ctx, s.userRepo, req.UploadedBy, "User", "uploadedBy"); err != nil {
		return nil, err
	}

	d, err := document.NewDocument(req.Title, req.Path)
	if err != nil {
		return nil, err
	}
	d.Description = req.Description
	if req.Category != "" {
		d.Category = document.Category(req.Category)
	}
	d.OriginalFileName = strings.TrimSpace(req.OriginalFileName)
	d.ContentType = strings.TrimSpace(req.ContentType)
	d.Size = req.Size
	d.UploadedBy = req.UploadedBy
	if err := d.Validate(); err != nil {
		return nil, err
	}

	return s.Save(ctx, d)
}

// Update changes the metadata fields present in req. The stored file never changes.
func (s *DocumentService) Update(ctx context.Context, id uuid.UUID, req UpdateDocumentRequest) (*DocumentResponse, error) {
	d, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	crud.SetTrimmed(&d.Title, req.Title)
	crud.Set(&d.Description, req.Description)
	crud.SetEnum(&d.Category, req.Category)

	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.Touch()
	return s.Save(ctx, d)
}

// Delete removes the record and then the stored object. A storage failure
// is logged; the record stays deleted.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := s.Load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Service.Delete(ctx, id); err != nil {
		return err
	}
	if s.storage == nil {
		return nil
	}
	if err := s.storage.DeleteObject(ctx, d.Path); err != nil {
		s.Logger().Warn("Failed to delete stored document",
			zap.String("document_id", id.String()),
			zap.String("path", d.Path),
			zap.Error(err),
		)
	}
	return nil
}

// DownloadURL returns where the document's file can be fetched
func (s *DocumentService) DownloadURL(ctx context.Context, id uuid.UUID) (*DownloadResponse, error) {
	d, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, d.Path, s.urlExpiry)
	if err != nil {
		return nil, err
	}
	return &DownloadResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// record stores metadata for a freshly uploaded file
func (s *DocumentService) record(ctx context.Context, in UploadInput, key string) (*DocumentResponse, error) {
	return s.Create(ctx, CreateDocumentRequest{
		Title:            in.Title,
		Description:      in.Description,
		Category:         in.Category,
		Path:             key,
		OriginalFileName: path.Base(in.OriginalFileName),
		ContentType:      in.ContentType,
		Size:             int64(len(in.Data)),
		UploadedBy:       in.UploadedBy,
	})
}
