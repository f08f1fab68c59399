// Package notifier provides delivery channels for outbox notifications.
package notifier

import (
	"context"
	"log/slog"

	"falcon/internal/core/domain/model/notification"
	"falcon/internal/core/ports"
)

// SlogSender delivers notifications to the structured log. It stands in for
// a real channel (email, in-app feed) in environments that have none
// configured; the outbox semantics stay identical either way.
type SlogSender struct {
	logger *slog.Logger
}

// NewSlogSender creates a log-backed notification sender.
func NewSlogSender(logger *slog.Logger) *SlogSender {
	return &SlogSender{
		logger: logger.With("component", "notification_sender"),
	}
}

var _ ports.NotificationSender = (*SlogSender)(nil)

// Send writes the notification to the log.
func (s *SlogSender) Send(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	attrs := []any{
		"notification_id", n.ID().String(),
		"order_id", n.OrderID().String(),
		"recipient_role", n.RecipientRole().String(),
		"message", n.Message(),
	}
	if n.RecipientID() != nil {
		attrs = append(attrs, "recipient_id", n.RecipientID().String())
	}

	s.logger.InfoContext(ctx, "notification delivered", attrs...)
	return nil
}
