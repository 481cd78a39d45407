package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendExtractionFailed(ctx context.Context, toEmail, toName, fileName, reason string) error {
	args := m.Called(ctx, toEmail, toName, fileName, reason)
	return args.Error(0)
}
