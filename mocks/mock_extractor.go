package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"scanvault/internal/domain"
	"scanvault/internal/port"
)

// MockExtractor is a mock implementation of port.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, input port.ExtractInput) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}

// MockTextRecognizer is a mock implementation of port.TextRecognizer.
type MockTextRecognizer struct {
	mock.Mock
}

func (m *MockTextRecognizer) RecognizeAll(ctx context.Context, pages [][]byte) (string, error) {
	args := m.Called(ctx, pages)
	return args.String(0), args.Error(1)
}
