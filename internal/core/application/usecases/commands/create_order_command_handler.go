package commands

import (
	"context"

	"falcon/internal/core/domain/model/activity"
	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order intake.
// Creates new orders in "new" status together with their first audit entry.
type CreateOrderCommandHandler struct {
	uowFactory WorkflowUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order intake operations.
// Requires a WorkflowUoWFactory so the order and its audit entry persist atomically.
func NewCreateOrderCommandHandler(uowFactory WorkflowUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Creates the order in "new" status and appends an "order_created" audit
// entry within a single transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.PropertyAddress(), cmd.ClientID())
	if err != nil {
		return err
	}

	entry, err := activity.NewEntry(
		newOrder.ID(), cmd.CreatedBy(), actor.RoleAdmin,
		activity.ActionOrderCreated,
		newOrder.Status(), newOrder.Status(),
		"order created",
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.ActivityRepository().Append(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
