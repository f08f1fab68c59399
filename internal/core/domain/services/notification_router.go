package services

import (
	"fmt"

	"falcon/internal/core/domain/model/activity"
	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/notification"
	"falcon/internal/core/domain/model/order"
)

// NotificationRouter decides who should be notified about a committed
// workflow transition and builds the pending outbox messages.
//
// Fan-out rules:
//   - in_progress -> in_review: all reviewers
//   - in_review -> needs_revisions: the assigned appraiser (role broadcast
//     when the assignment reference is missing)
//   - in_review -> ready_for_client: all admins
//   - ready_for_client -> sent_to_client: all admins (client-facing delivery
//     happens outside the back office)
//   - any -> complete: all admins
//   - manual overrides: all admins, regardless of edge
//
// Transitions not listed produce no notifications.
type NotificationRouter struct{}

// NewNotificationRouter creates a stateless notification router.
func NewNotificationRouter() NotificationRouter {
	return NotificationRouter{}
}

// Route builds the pending notifications for one transition.
// The order must be the post-transition aggregate and the entry the audit
// record produced by the same transition. Returns an empty slice for
// transitions nobody needs to hear about.
func (NotificationRouter) Route(o *order.Order, entry *activity.Entry) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	from := entry.PreviousStatus()
	to := entry.NewStatus()

	if entry.Action() == activity.ActionManualOverride {
		n, err := notification.NewNotification(o.ID(), actor.RoleAdmin, nil,
			fmt.Sprintf("Order %s was manually moved from %s to %s",
				o.PropertyAddress(), from.Label(), to.Label()))
		if err != nil {
			return nil, err
		}
		return []*notification.Notification{n}, nil
	}

	switch {
	case from == order.StatusInProgress && to == order.StatusInReview:
		n, err := notification.NewNotification(o.ID(), actor.RoleReviewer, nil,
			fmt.Sprintf("Order %s is ready for review", o.PropertyAddress()))
		if err != nil {
			return nil, err
		}
		return []*notification.Notification{n}, nil

	case from == order.StatusInReview && to == order.StatusNeedsRevisions:
		n, err := notification.NewNotification(o.ID(), actor.RoleAppraiser, o.AppraiserID(),
			fmt.Sprintf("Order %s needs revisions", o.PropertyAddress()))
		if err != nil {
			return nil, err
		}
		return []*notification.Notification{n}, nil

	case from == order.StatusInReview && to == order.StatusReadyForClient:
		n, err := notification.NewNotification(o.ID(), actor.RoleAdmin, nil,
			fmt.Sprintf("Order %s passed review and is ready for the client", o.PropertyAddress()))
		if err != nil {
			return nil, err
		}
		return []*notification.Notification{n}, nil

	case from == order.StatusReadyForClient && to == order.StatusSentToClient:
		n, err := notification.NewNotification(o.ID(), actor.RoleAdmin, nil,
			fmt.Sprintf("Order %s was sent to the client", o.PropertyAddress()))
		if err != nil {
			return nil, err
		}
		return []*notification.Notification{n}, nil

	case to == order.StatusComplete:
		n, err := notification.NewNotification(o.ID(), actor.RoleAdmin, nil,
			fmt.Sprintf("Order %s is complete", o.PropertyAddress()))
		if err != nil {
			return nil, err
		}
		return []*notification.Notification{n}, nil
	}

	return []*notification.Notification{}, nil
}
