package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCredentialStore is a mock implementation of port.CredentialStore.
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) Resolve(ctx context.Context, ownerID uuid.UUID, ref string) (string, error) {
	args := m.Called(ctx, ownerID, ref)
	return args.String(0), args.Error(1)
}

func (m *MockCredentialStore) Store(ctx context.Context, ownerID uuid.UUID, ref, apiKey string) error {
	args := m.Called(ctx, ownerID, ref, apiKey)
	return args.Error(0)
}
