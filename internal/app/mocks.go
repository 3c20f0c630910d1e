package app

import (
	"paperdesk_backend/internal/email"
	"paperdesk_backend/internal/logger"
)

// MockEmailProvider logs messages instead of delivering them. Used when
// no mail accounts are configured.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Message) error {
	logger.Info("MOCK email", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *MockEmailProvider) Close() error {
	return nil
}
