package notify

import (
	"context"

	"github.com/pharmaledger/backend/internal/domain/notification"
	"go.uber.org/zap"
)

// MockProvider logs instead of delivering. Default in development so the
// queue and sweeps can be exercised without Meta credentials.
type MockProvider struct {
	logger *zap.Logger
}

// NewMockProvider creates a MockProvider
func NewMockProvider(logger *zap.Logger) *MockProvider {
	return &MockProvider{logger: logger}
}

// Send logs the notification and reports success
func (p *MockProvider) Send(_ context.Context, n *notification.Notification) error {
	p.logger.Info("mock notification delivered",
		zap.String("recipient", n.Recipient),
		zap.String("channel", string(n.Channel)),
		zap.String("template", n.TemplateName))
	return nil
}
