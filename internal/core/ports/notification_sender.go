package ports

import (
	"context"

	"falcon/internal/core/domain/model/notification"
)

// NotificationSender hands a notification to an external delivery channel
// (email, in-app feed). Delivery is best effort; a failed send leaves the
// notification pending for the next dispatch run.
type NotificationSender interface {
	Send(ctx context.Context, n *notification.Notification) error
}
