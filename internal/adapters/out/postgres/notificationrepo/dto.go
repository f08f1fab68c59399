// Package notificationrepo persists the notification outbox.
package notificationrepo

import (
	"time"

	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for outbox rows.
type NotificationDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	RecipientRole int
	RecipientID   *uuid.UUID `gorm:"type:uuid"`
	Message       string
	Status        int       `gorm:"index"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	SentAt        *time.Time
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification to its database representation.
func fromDomain(n *notification.Notification) NotificationDTO {
	var recipientID *uuid.UUID
	if id := n.RecipientID(); id != nil {
		raw := id.Bytes()
		recipientID = &raw
	}

	return NotificationDTO{
		ID:            n.ID().Bytes(),
		OrderID:       n.OrderID().Bytes(),
		RecipientRole: int(n.RecipientRole()),
		RecipientID:   recipientID,
		Message:       n.Message(),
		Status:        int(n.Status()),
		CreatedAt:     n.CreatedAt(),
		SentAt:        n.SentAt(),
	}
}

// toDomain converts a database DTO to a notification using RestoreNotification.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var recipientID *kernel.UUID
	if dto.RecipientID != nil {
		rID, recipientErr := kernel.UUIDFromBytes((*dto.RecipientID)[:])
		if recipientErr != nil {
			return nil, recipientErr
		}
		recipientID = &rID
	}

	return notification.RestoreNotification(
		id, orderID,
		actor.Role(dto.RecipientRole),
		recipientID,
		dto.Message,
		notification.DeliveryStatus(dto.Status),
		dto.CreatedAt,
		dto.SentAt,
	)
}
