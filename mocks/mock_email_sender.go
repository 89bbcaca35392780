package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"millgate/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendRateResetNotice(ctx context.Context, toEmail string, notice port.ResetNotice) error {
	args := m.Called(ctx, toEmail, notice)
	return args.Error(0)
}
