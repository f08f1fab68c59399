package commands

import (
	"context"
	"log/slog"

	"falcon/internal/core/ports"
)

// DispatchNotificationsCommandHandler flushes the notification outbox.
// Pending notifications are handed to the configured sender oldest first;
// each successful send is marked so the next run skips it. A failed send
// leaves the notification pending for retry, it never aborts the batch.
type DispatchNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	sender     ports.NotificationSender
	logger     *slog.Logger
}

// NewDispatchNotificationsCommandHandler creates a handler for outbox delivery.
func NewDispatchNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	sender ports.NotificationSender,
	logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		sender:     sender,
		logger:     logger,
	}
}

// Handle processes the dispatch command.
// Loads all pending notifications, sends each one, and persists the sent
// marks in a single transaction.
func (h DispatchNotificationsCommandHandler) Handle(ctx context.Context, cmd DispatchNotificationsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notificationRepo := uow.NotificationRepository()

	pending, err := notificationRepo.GetAllPending(ctx)
	if err != nil {
		return err
	}

	for _, n := range pending {
		if sendErr := h.sender.Send(ctx, n); sendErr != nil {
			h.logger.Warn("notification send failed, will retry",
				"notification_id", n.ID(), "error", sendErr)
			continue
		}

		if err = n.MarkSent(); err != nil {
			return err
		}

		if err = notificationRepo.Update(ctx, n); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
