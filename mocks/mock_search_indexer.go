package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"scanvault/internal/port"
)

// MockSearchIndexer is a mock implementation of port.SearchIndexer.
type MockSearchIndexer struct {
	mock.Mock
}

func (m *MockSearchIndexer) IndexAsset(ctx context.Context, doc port.IndexDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
