// Package notify implements the notification queue and the dispatch sweep.
// Delivery is at-least-once: items stay pending until a sweep marks them
// sent or failed, and sent items are never picked up again.
package notify

import (
	"context"
	"fmt"

	"github.com/pharmaledger/backend/internal/domain/notification"
	"github.com/pharmaledger/backend/internal/domain/settings"
	"go.uber.org/zap"
)

// DefaultDispatchBatch bounds how many pending items one sweep picks up
const DefaultDispatchBatch = 20

// Provider delivers one notification over its channel
type Provider interface {
	Send(ctx context.Context, n *notification.Notification) error
}

// SweepResult summarizes one dispatch sweep
type SweepResult struct {
	Picked int
	Sent   int
	Failed int
}

// Service queues notifications and runs the dispatch sweep
type Service struct {
	repo      notification.Repository
	settings  settings.Repository
	provider  Provider
	batchSize int
	logger    *zap.Logger
}

// NewService creates a notify Service. batchSize <= 0 falls back to
// DefaultDispatchBatch.
func NewService(repo notification.Repository, settingsRepo settings.Repository, provider Provider, batchSize int, logger *zap.Logger) *Service {
	if batchSize <= 0 {
		batchSize = DefaultDispatchBatch
	}
	return &Service{
		repo:      repo,
		settings:  settingsRepo,
		provider:  provider,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Queue stores a new pending notification
func (s *Service) Queue(ctx context.Context, recipient string, channel notification.Channel, template string, payload notification.Payload) (*notification.Notification, error) {
	n, err := notification.NewNotification(recipient, channel, template, payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// QueueLowStockAlert queues a low-stock alert to the configured recipient
func (s *Service) QueueLowStockAlert(ctx context.Context, medicineName string, quantity string, threshold int) (*notification.Notification, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.AlertRecipient == "" {
		return nil, nil
	}
	return s.Queue(ctx, cfg.AlertRecipient, notification.ChannelWhatsApp, cfg.LowStockTemplate, notification.Payload{
		"medicine":  medicineName,
		"quantity":  quantity,
		"threshold": fmt.Sprintf("%d", threshold),
	})
}

// QueueExpiryAlert queues an expiry alert to the configured recipient
func (s *Service) QueueExpiryAlert(ctx context.Context, medicineName, batchNo string, daysLeft int) (*notification.Notification, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.AlertRecipient == "" {
		return nil, nil
	}
	return s.Queue(ctx, cfg.AlertRecipient, notification.ChannelWhatsApp, cfg.ExpiryTemplate, notification.Payload{
		"medicine": medicineName,
		"batch_no": batchNo,
		"days":     fmt.Sprintf("%d", daysLeft),
	})
}

// DispatchPending runs one sweep: pick up to batchSize pending items,
// attempt delivery, and mark each sent or failed. A provider failure never
// aborts the sweep; remaining items still get their attempt.
func (s *Service) DispatchPending(ctx context.Context) (*SweepResult, error) {
	pending, err := s.repo.FindPending(ctx, s.batchSize)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Picked: len(pending)}
	for _, n := range pending {
		if err := s.provider.Send(ctx, n); err != nil {
			if markErr := n.MarkFailed(err.Error()); markErr != nil {
				s.logger.Error("failed to mark notification", zap.Error(markErr))
				continue
			}
			result.Failed++
		} else {
			if markErr := n.MarkSent(); markErr != nil {
				s.logger.Error("failed to mark notification", zap.Error(markErr))
				continue
			}
			result.Sent++
		}
		if err := s.repo.Save(ctx, n); err != nil {
			s.logger.Error("failed to persist notification state", zap.Error(err))
		}
	}

	if result.Picked > 0 {
		s.logger.Info("dispatch sweep finished",
			zap.Int("picked", result.Picked),
			zap.Int("sent", result.Sent),
			zap.Int("failed", result.Failed))
	}
	return result, nil
}

// Requeue puts a failed notification back into the queue
func (s *Service) Requeue(ctx context.Context, n *notification.Notification) error {
	if err := n.Requeue(); err != nil {
		return err
	}
	return s.repo.Save(ctx, n)
}
