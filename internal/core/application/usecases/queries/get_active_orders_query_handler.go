package queries

import (
	"context"

	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads the active order list from the database.
// Orders in the terminal "complete" status are filtered out.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all non-terminal orders.
// Results are sorted by creation time so the oldest engagements surface first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			property_address,
			status,
			appraiser_id,
			created_at,
			updated_at
		FROM orders
		WHERE status != ?
		ORDER BY created_at, id
	`, order.StatusComplete).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var appraiserID uuid.NullUUID
		var status int

		err = rows.Scan(
			&id,
			&resp.PropertyAddress,
			&status,
			&appraiserID,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)

		if appraiserID.Valid {
			aid, aidErr := kernel.UUIDFromBytes(appraiserID.UUID[:])
			if aidErr != nil {
				return nil, aidErr
			}
			resp.AppraiserID = &aid
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
