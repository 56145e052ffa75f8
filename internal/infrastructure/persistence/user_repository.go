package persistence

import (
	"context"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	*GormRepository[identity.User, models.UserModel, *models.UserModel]
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{
		GormRepository: NewGormRepository[identity.User, models.UserModel](db, QueryOptions{
			SearchColumns: []string{"email", "first_name", "last_name"},
			FilterColumns: map[string]string{
				"role":     "role",
				"isActive": "is_active",
			},
			SortFields: UserSortFields,
		}),
	}
}

// FindByEmail finds a user by email, case-insensitively
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.ErrNotFound
	}
	return r.FindOneBy(ctx, "email", email)
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
