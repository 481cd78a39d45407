package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"scanvault/internal/domain"
	"scanvault/internal/service"
)

// MockOwnerService is a mock implementation of service.OwnerService.
type MockOwnerService struct {
	mock.Mock
}

func (m *MockOwnerService) Register(ctx context.Context, email, displayName string) (*domain.Owner, error) {
	args := m.Called(ctx, email, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}

func (m *MockOwnerService) GetByID(ctx context.Context, ownerID uuid.UUID) (*domain.Owner, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}

func (m *MockOwnerService) UpdateSettings(ctx context.Context, input *service.UpdateOwnerSettingsInput) (*domain.Owner, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}

func (m *MockOwnerService) StoreCredential(ctx context.Context, ownerID uuid.UUID, ref, apiKey string) error {
	args := m.Called(ctx, ownerID, ref, apiKey)
	return args.Error(0)
}
