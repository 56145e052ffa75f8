package crud

import (
	"context"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
)

// EnsureExists returns a reference error naming resource when id is not in repo
func EnsureExists[T any](ctx context.Context, repo shared.Repository[T], id uuid.UUID, resource, field string) error {
	if id == uuid.Nil {
		return shared.NewValidationError(field, field+" is required")
	}
	ok, err := repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewReferenceError(resource, field)
	}
	return nil
}

// EnsureOptionalExists is EnsureExists for optional references; nil passes
func EnsureOptionalExists[T any](ctx context.Context, repo shared.Repository[T], id *uuid.UUID, resource, field string) error {
	if id == nil {
		return nil
	}
	return EnsureExists(ctx, repo, *id, resource, field)
}

// EnsureUnique returns an already-exists error when another row than
// excludeID has column equal to value. Blank values are not checked.
func EnsureUnique[T any](ctx context.Context, repo shared.Repository[T], column, value string, excludeID *uuid.UUID, resource, field string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	taken, err := repo.ExistsBy(ctx, column, value, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewAlreadyExistsError(resource, field, value)
	}
	return nil
}
