package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"scanvault/internal/domain"
)

// MockAssetRepo is a mock implementation of port.AssetRepository.
type MockAssetRepo struct {
	mock.Mock
}

func (m *MockAssetRepo) Create(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepo) GetByID(ctx context.Context, ownerID, assetID uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, ownerID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, categoryID *uuid.UUID, offset, limit int) ([]domain.Asset, int, error) {
	args := m.Called(ctx, ownerID, categoryID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Asset), args.Int(1), args.Error(2)
}

func (m *MockAssetRepo) UpdateExtraction(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepo) MarkQueued(ctx context.Context, ownerID, assetID uuid.UUID) error {
	args := m.Called(ctx, ownerID, assetID)
	return args.Error(0)
}

func (m *MockAssetRepo) MarkFailed(ctx context.Context, assetID uuid.UUID, errorMessage string) error {
	args := m.Called(ctx, assetID, errorMessage)
	return args.Error(0)
}

func (m *MockAssetRepo) Delete(ctx context.Context, ownerID, assetID uuid.UUID) error {
	args := m.Called(ctx, ownerID, assetID)
	return args.Error(0)
}

func (m *MockAssetRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.Asset, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}
