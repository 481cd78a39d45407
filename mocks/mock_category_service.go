package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"scanvault/internal/classify"
	"scanvault/internal/domain"
)

// MockCategoryService is a mock implementation of service.CategoryService.
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Category, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateFieldPriorities(ctx context.Context, ownerID, id uuid.UUID, priorities []string) error {
	args := m.Called(ctx, ownerID, id, priorities)
	return args.Error(0)
}

func (m *MockCategoryService) Resolve(ctx context.Context, ownerID uuid.UUID, slug string) (*domain.Category, error) {
	args := m.Called(ctx, ownerID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) Choices(ctx context.Context, ownerID uuid.UUID) ([]classify.CategoryChoice, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]classify.CategoryChoice), args.Error(1)
}
