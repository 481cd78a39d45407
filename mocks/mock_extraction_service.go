package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"scanvault/internal/domain"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) ProcessJob(ctx context.Context, job *domain.ExtractionJob) (*domain.Asset, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
