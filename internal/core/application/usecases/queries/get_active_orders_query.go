// Package queries contains read-only operations for the workflow core.
// Query handlers bypass the aggregate layer and read the database directly,
// keeping the read path cheap and free of domain invariant churn.
package queries

import (
	"errors"
	"time"

	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"
	"falcon/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery retrieves every order still moving through the
// workflow, meaning anything not yet complete. Used by the back-office
// dashboard.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for the active order list.
// This is a parameterless query.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse represents one active order row.
type GetActiveOrdersQueryResponse struct {
	ID              kernel.UUID
	PropertyAddress string
	Status          order.Status
	AppraiserID     *kernel.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
