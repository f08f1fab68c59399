package queries

import (
	"context"

	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"
	"falcon/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderActivityQueryHandler reads one order's audit trail from the database.
type GetOrderActivityQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderActivityQueryHandler creates a handler for audit trail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderActivityQueryHandler(db *gorm.DB) GetOrderActivityQueryHandler {
	return GetOrderActivityQueryHandler{db: db}
}

// Handle executes the query to retrieve an order's audit trail, newest first.
// Entries sharing a timestamp are tie-broken by ID so the ordering is stable.
// Returns an errs.ErrObjectNotFound-wrapped error for an unknown order.
func (h GetOrderActivityQueryHandler) Handle(
	ctx context.Context,
	query GetOrderActivityQuery,
) ([]GetOrderActivityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var count int64
	if err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(1) FROM orders WHERE id = ?`, query.OrderID().String()).
		Scan(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	entries := make([]GetOrderActivityQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			actor_id,
			actor_role,
			action,
			previous_status,
			new_status,
			message,
			created_at
		FROM activity_entries
		WHERE order_id = ?
		ORDER BY created_at DESC, id DESC
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrderActivityQueryResponse
		var id, actorID uuid.UUID
		var actorRole, previousStatus, newStatus int

		err = rows.Scan(
			&id,
			&actorID,
			&actorRole,
			&resp.Action,
			&previousStatus,
			&newStatus,
			&resp.Message,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = entryID

		entryActorID, actorErr := kernel.UUIDFromBytes(actorID[:])
		if actorErr != nil {
			return nil, actorErr
		}
		resp.ActorID = entryActorID

		resp.ActorRole = actor.Role(actorRole)
		resp.PreviousStatus = order.Status(previousStatus)
		resp.NewStatus = order.Status(newStatus)

		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
