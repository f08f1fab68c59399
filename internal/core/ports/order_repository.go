// Package ports defines the contracts between the workflow core and
// infrastructure. The hosted data platform sits behind these interfaces,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate as a conditional
	// write: the stored row must still carry expectedUpdatedAt, otherwise a
	// concurrent writer won and the call fails with an
	// errs.ErrVersionConflict-wrapped error. This is the compare-and-swap
	// that keeps two actors from racing the same order on stale reads.
	Update(ctx context.Context, aggregate *order.Order, expectedUpdatedAt time.Time) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the authoritative state, including the updatedAt version used
	// for conditional writes.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders not yet in a terminal status,
	// ordered by creation time.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}
