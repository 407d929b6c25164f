package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"menulens/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendModerationAlert(ctx context.Context, toEmail string, alert port.ModerationAlert) error {
	args := m.Called(ctx, toEmail, alert)
	return args.Error(0)
}
