package document

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/crud"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/document"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadKeyPrefix is the first segment of every upload key
const UploadKeyPrefix = "uploads"

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// UploadService stores uploaded files and optionally records them as documents
type UploadService struct {
	storage   ObjectStorage
	documents *DocumentService
	publisher shared.EventPublisher
	urlExpiry time.Duration
	logger    *zap.Logger
	now       func() time.Time
	newID     func() uuid.UUID
}

// NewUploadService creates a new UploadService. documents may be nil when
// uploads never create document records.
func NewUploadService(
	storage ObjectStorage,
	documents *DocumentService,
	publisher shared.EventPublisher,
	urlExpiry time.Duration,
	logger *zap.Logger,
) *UploadService {
	if urlExpiry <= 0 {
		urlExpiry = DefaultDownloadURLExpiry
	}
	return &UploadService{
		storage:   storage,
		documents: documents,
		publisher: publisher,
		urlExpiry: urlExpiry,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.New,
	}
}

// Upload stores in.Data under uploads/<yyyy>/<mm>/<uuid><ext> and announces
// it with a document.uploaded event. When in.Title is set a Document is
// recorded for the file as well.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*UploadResponse, error) {
	original := path.Base(strings.ReplaceAll(strings.TrimSpace(in.OriginalFileName), `\`, "/"))
	if original == "" || original == "." || original == "/" {
		return nil, shared.NewValidationError("file", "file name is required")
	}
	in.OriginalFileName = original

	id := s.newID()
	key := s.storageKey(id, original)
	if err := s.storage.Upload(ctx, key, in.Data, in.ContentType); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	resp := &UploadResponse{
		Success:          true,
		Path:             key,
		FileName:         path.Base(key),
		OriginalFileName: original,
		ContentType:      in.ContentType,
		Size:             int64(len(in.Data)),
	}
	if url, _, err := s.storage.GenerateDownloadURL(ctx, key, s.urlExpiry); err == nil {
		resp.URL = url
	}

	if strings.TrimSpace(in.Title) != "" && s.documents != nil {
		doc, err := s.documents.record(ctx, in, key)
		if err != nil {
			s.discard(ctx, key)
			return nil, err
		}
		resp.Document = doc
	}

	s.logger.Info("File uploaded",
		zap.String("path", key),
		zap.String("original_file_name", original),
		zap.Int64("size", resp.Size),
	)

	aggregateID := id
	if resp.Document != nil {
		aggregateID = resp.Document.ID
	}
	event := &document.UploadedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(document.EventTypeDocumentUploaded, "Document", aggregateID),
		Path:             key,
		FileName:         resp.FileName,
		OriginalFileName: original,
		ContentType:      in.ContentType,
		Size:             resp.Size,
	}
	if in.UploadedBy != nil {
		event.UploadedBy = in.UploadedBy.String()
	}
	crud.Publish(ctx, s.publisher, s.logger, document.EventTypeDocumentUploaded, event)

	return resp, nil
}

func (s *UploadService) storageKey(id uuid.UUID, originalFileName string) string {
	now := s.now().UTC()
	return fmt.Sprintf("%s/%04d/%02d/%s%s", UploadKeyPrefix, now.Year(), int(now.Month()), id, safeExt(originalFileName))
}

// discard removes an object whose document record could not be written
func (s *UploadService) discard(ctx context.Context, key string) {
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to remove orphaned upload", zap.String("path", key), zap.Error(err))
	}
}

// safeExt returns the lower-cased extension of name, or "" when it holds
// anything other than letters and digits.
func safeExt(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if !extPattern.MatchString(ext) {
		return ""
	}
	return ext
}
