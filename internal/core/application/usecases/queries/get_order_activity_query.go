package queries

import (
	"errors"
	"time"

	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"
	"falcon/internal/pkg/guard"
)

var (
	ErrGetOrderActivityQueryIsNotConstructed = errors.New(
		"GetOrderActivityQuery must be created via NewGetOrderActivityQuery constructor",
	)
)

// GetOrderActivityQuery retrieves the audit trail of one order, newest entry
// first. Each execution returns a consistent snapshot of the trail as of the
// query, not a live feed.
type GetOrderActivityQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderActivityQuery creates a query for one order's audit trail.
func NewGetOrderActivityQuery(orderID kernel.UUID) (GetOrderActivityQuery, error) {
	query := GetOrderActivityQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderActivityQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderActivityQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderActivityQueryIsNotConstructed)
}

// OrderID returns the order whose trail is requested.
func (q GetOrderActivityQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderActivityQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetOrderActivityQueryResponse represents one audit trail entry.
type GetOrderActivityQueryResponse struct {
	ID             kernel.UUID
	ActorID        kernel.UUID
	ActorRole      actor.Role
	Action         string
	PreviousStatus order.Status
	NewStatus      order.Status
	Message        string
	CreatedAt      time.Time
}
