// Package notification provides the outbox entity for messages produced by
// workflow transitions. Notifications are enqueued after a transition commits
// and delivered asynchronously; a delivery failure never affects the
// transition that produced the message.
package notification

import (
	"errors"
	"fmt"
	"time"

	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/pkg/errs"
)

// DeliveryStatus tracks a notification through the outbox.
type DeliveryStatus int

const (
	// DeliveryUnknown represents an invalid or undefined delivery status.
	DeliveryUnknown DeliveryStatus = iota

	// DeliveryPending means the notification is enqueued and awaiting delivery.
	DeliveryPending

	// DeliverySent means the notification was handed to the delivery channel.
	DeliverySent
)

// String returns the wire form of the delivery status.
func (s DeliveryStatus) String() string {
	switch s {
	case DeliveryPending:
		return "pending"
	case DeliverySent:
		return "sent"
	default:
		return "unknown"
	}
}

// Validate checks if the DeliveryStatus value is valid.
func (s DeliveryStatus) Validate() error {
	if s != DeliveryPending && s != DeliverySent {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryStatus", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

var (
	// ErrNotificationIsNotConstructed is returned when a Notification was not
	// created through the NewNotification or RestoreNotification factory methods.
	ErrNotificationIsNotConstructed = errors.New(
		"Notification must be created via NewNotification or RestoreNotification constructor")

	// ErrAlreadySent is returned when marking an already delivered notification.
	ErrAlreadySent = errors.New("notification was already sent")
)

// Notification is one outbox row addressed to a role, a specific actor, or both.
// RecipientID nil means "everyone holding RecipientRole".
type Notification struct {
	id            kernel.UUID
	orderID       kernel.UUID
	recipientRole actor.Role
	recipientID   *kernel.UUID
	message       string
	status        DeliveryStatus
	createdAt     time.Time
	sentAt        *time.Time

	isConstructed bool
}

// NewNotification enqueues a pending notification.
//
// Parameters:
//   - orderID: the order the message is about (must be a valid UUID)
//   - recipientRole: the role addressed (must be valid)
//   - recipientID: optional specific recipient; nil targets the whole role
//   - message: non-empty message body
func NewNotification(
	orderID kernel.UUID,
	recipientRole actor.Role,
	recipientID *kernel.UUID,
	message string,
) (*Notification, error) {
	n := &Notification{
		id:            kernel.NewUUID(),
		status:        DeliveryPending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		n.setOrderID(orderID),
		n.setRecipient(recipientRole, recipientID),
		n.setMessage(message),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotification reconstructs a Notification from persistence.
func RestoreNotification(
	id, orderID kernel.UUID,
	recipientRole actor.Role,
	recipientID *kernel.UUID,
	message string,
	status DeliveryStatus,
	createdAt time.Time,
	sentAt *time.Time,
) (*Notification, error) {
	n := &Notification{
		createdAt:     createdAt,
		sentAt:        sentAt,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setOrderID(orderID),
		n.setRecipient(recipientRole, recipientID),
		n.setMessage(message),
		n.setStatus(status),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate ensures the Notification was properly constructed through a factory method.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// OrderID returns the order the notification is about.
func (n *Notification) OrderID() kernel.UUID {
	return n.orderID
}

// RecipientRole returns the addressed role.
func (n *Notification) RecipientRole() actor.Role {
	return n.recipientRole
}

// RecipientID returns the specific recipient, or nil for the whole role.
func (n *Notification) RecipientID() *kernel.UUID {
	return n.recipientID
}

// Message returns the message body.
func (n *Notification) Message() string {
	return n.message
}

// Status returns the delivery status.
func (n *Notification) Status() DeliveryStatus {
	return n.status
}

// CreatedAt returns the enqueue timestamp.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// SentAt returns the delivery timestamp, or nil if still pending.
func (n *Notification) SentAt() *time.Time {
	return n.sentAt
}

// MarkSent records successful delivery. Returns ErrAlreadySent if the
// notification was already delivered.
func (n *Notification) MarkSent() error {
	if n.status == DeliverySent {
		return ErrAlreadySent
	}

	now := time.Now().UTC()
	n.status = DeliverySent
	n.sentAt = &now
	return nil
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	n.orderID = orderID
	return nil
}

func (n *Notification) setRecipient(recipientRole actor.Role, recipientID *kernel.UUID) error {
	if err := recipientRole.Validate(); err != nil {
		return err
	}
	if recipientID != nil {
		if err := recipientID.Validate(); err != nil {
			return err
		}
		n.recipientID = recipientID
	}
	n.recipientRole = recipientRole
	return nil
}

func (n *Notification) setMessage(message string) error {
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	n.message = message
	return nil
}

func (n *Notification) setStatus(status DeliveryStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	n.status = status
	return nil
}
