package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"scanvault/internal/domain"
	"scanvault/internal/service"
)

// MockAssetService is a mock implementation of service.AssetService.
type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) Upload(ctx context.Context, input *service.UploadAssetInput) (*domain.Asset, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetService) GetByID(ctx context.Context, ownerID, assetID uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, ownerID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetService) List(ctx context.Context, ownerID uuid.UUID, categoryID *uuid.UUID, offset, limit int) ([]domain.Asset, int, error) {
	args := m.Called(ctx, ownerID, categoryID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Asset), args.Int(1), args.Error(2)
}

func (m *MockAssetService) Retry(ctx context.Context, ownerID, assetID uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, ownerID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetService) Delete(ctx context.Context, ownerID, assetID uuid.UUID) error {
	args := m.Called(ctx, ownerID, assetID)
	return args.Error(0)
}

func (m *MockAssetService) PageURLs(ctx context.Context, ownerID, assetID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, ownerID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAssetService) ExportXLSX(ctx context.Context, ownerID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
