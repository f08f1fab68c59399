// Package activityrepo persists the append-only audit trail. The repository
// exposes append and read operations only; rows are never updated or deleted.
package activityrepo

import (
	"time"

	"falcon/internal/core/domain/model/activity"
	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for audit trail entries.
// created_at is stamped by the domain layer when the entry is built.
type EntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	ActorID        uuid.UUID `gorm:"type:uuid"`
	ActorRole      int
	Action         string
	PreviousStatus int
	NewStatus      int
	Message        string
	CreatedAt      time.Time `gorm:"autoCreateTime:false;index"`
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "activity_entries"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *activity.Entry) EntryDTO {
	return EntryDTO{
		ID:             entry.ID().Bytes(),
		OrderID:        entry.OrderID().Bytes(),
		ActorID:        entry.ActorID().Bytes(),
		ActorRole:      int(entry.ActorRole()),
		Action:         entry.Action(),
		PreviousStatus: int(entry.PreviousStatus()),
		NewStatus:      int(entry.NewStatus()),
		Message:        entry.Message(),
		CreatedAt:      entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to an audit entry using RestoreEntry.
func toDomain(dto EntryDTO) (*activity.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	return activity.RestoreEntry(
		id, orderID, actorID,
		actor.Role(dto.ActorRole),
		dto.Action,
		order.Status(dto.PreviousStatus), order.Status(dto.NewStatus),
		dto.Message,
		dto.CreatedAt,
	)
}
