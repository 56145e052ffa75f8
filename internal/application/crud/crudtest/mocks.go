// Package crudtest provides testify mocks for the repository and publisher
// interfaces used by the application services.
package crudtest

import (
	"context"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a testify mock of shared.Repository[T]
type MockRepository[T any] struct {
	mock.Mock
}

var _ shared.Repository[struct{}] = (*MockRepository[struct{}])(nil)

func (m *MockRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockRepository[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository[T]) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository[T]) ExistsBy(ctx context.Context, field string, value any, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, field, value, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository[T]) Save(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher is a testify mock of shared.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, event any) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}
