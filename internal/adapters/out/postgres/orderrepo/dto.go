// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Timestamps are managed by the domain layer, not GORM: updated_at is the
// version column for conditional writes and must never be touched implicitly.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID        *uuid.UUID `gorm:"type:uuid"`
	AppraiserID     *uuid.UUID `gorm:"type:uuid;index"`
	ReviewerID      *uuid.UUID `gorm:"type:uuid"`
	PropertyAddress string
	Status          int       `gorm:"index"`
	CreatedAt       time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		ClientID:        optionalUUID(aggregate.ClientID()),
		AppraiserID:     optionalUUID(aggregate.AppraiserID()),
		ReviewerID:      optionalUUID(aggregate.ReviewerID()),
		PropertyAddress: aggregate.PropertyAddress(),
		Status:          int(aggregate.Status()),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := optionalKernelUUID(dto.ClientID)
	if err != nil {
		return nil, err
	}
	appraiserID, err := optionalKernelUUID(dto.AppraiserID)
	if err != nil {
		return nil, err
	}
	reviewerID, err := optionalKernelUUID(dto.ReviewerID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.PropertyAddress,
		clientID, appraiserID, reviewerID,
		order.Status(dto.Status),
		dto.CreatedAt, dto.UpdatedAt,
	)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
