package identity

import (
	"context"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
)

// UserRepository persists users
type UserRepository interface {
	shared.Repository[User]
	// FindByEmail returns shared.ErrNotFound when no user has the email
	FindByEmail(ctx context.Context, email string) (*User, error)
}
