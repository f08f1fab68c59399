package ports

import (
	"context"

	"falcon/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for the
// notification outbox.
type NotificationRepository interface {
	// Add enqueues a pending notification.
	Add(ctx context.Context, n *notification.Notification) error

	// Update persists delivery-state changes to an existing notification.
	Update(ctx context.Context, n *notification.Notification) error

	// GetAllPending retrieves notifications awaiting delivery,
	// oldest first so delivery is roughly in enqueue order.
	GetAllPending(ctx context.Context) ([]*notification.Notification, error)
}
