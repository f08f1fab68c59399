package ports

import (
	"context"

	"falcon/internal/core/domain/model/activity"
	"falcon/internal/core/domain/model/kernel"
)

// ActivityRepository defines the persistence contract for the append-only
// audit trail. There are deliberately no update or delete operations:
// entries are immutable history.
type ActivityRepository interface {
	// Append persists one new audit entry. Appending an entry whose ID
	// already exists fails; existing rows are never touched.
	Append(ctx context.Context, entry *activity.Entry) error

	// ListForOrder retrieves all entries for an order, newest first.
	// Each call returns a fresh consistent snapshot, not a live stream.
	ListForOrder(ctx context.Context, orderID kernel.UUID) ([]*activity.Entry, error)
}
