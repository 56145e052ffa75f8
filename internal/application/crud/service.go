// Package crud holds the list/get/delete plumbing shared by every resource
// service, plus the reference and uniqueness checks run before writes.
package crud

import (
	"context"
	"errors"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the read and delete operations of one resource over its
// repository. Resource services embed it and add Create and Update.
type Service[T any, R any] struct {
	repo       shared.Repository[T]
	resource   string
	toResponse func(*T) R
	logger     *zap.Logger
}

// NewService creates a Service. resource is the singular display name used
// in error messages, e.g. "Bank".
func NewService[T any, R any](repo shared.Repository[T], resource string, toResponse func(*T) R, logger *zap.Logger) *Service[T, R] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service[T, R]{
		repo:       repo,
		resource:   resource,
		toResponse: toResponse,
		logger:     logger,
	}
}

// Resource returns the display name of the resource
func (s *Service[T, R]) Resource() string {
	return s.resource
}

// Logger returns the service logger
func (s *Service[T, R]) Logger() *zap.Logger {
	return s.logger
}

// Respond converts an entity to its response DTO
func (s *Service[T, R]) Respond(entity *T) *R {
	r := s.toResponse(entity)
	return &r
}

// List returns one page of entities matching filter
func (s *Service[T, R]) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[R], error) {
	filter = filter.Normalize()

	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]R, len(items))
	for i := range items {
		out[i] = s.toResponse(&items[i])
	}
	page := shared.NewPaginated(out, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Load returns the entity with id, or a "<Resource> not found" error
func (s *Service[T, R]) Load(ctx context.Context, id uuid.UUID) (*T, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError(s.resource)
		}
		return nil, err
	}
	return entity, nil
}

// GetByID returns the response DTO of the entity with id
func (s *Service[T, R]) GetByID(ctx context.Context, id uuid.UUID) (*R, error) {
	entity, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Respond(entity), nil
}

// Save persists entity and returns its response DTO
func (s *Service[T, R]) Save(ctx context.Context, entity *T) (*R, error) {
	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, err
	}
	return s.Respond(entity), nil
}

// Delete removes the entity with id
func (s *Service[T, R]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError(s.resource)
		}
		return err
	}
	s.logger.Info(s.resource+" deleted", zap.String("id", id.String()))
	return nil
}
