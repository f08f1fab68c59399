package commands

import (
	"context"
	"fmt"

	"falcon/internal/core/domain/model/activity"
	"falcon/internal/core/domain/model/actor"
)

// AssignAppraiserCommandHandler orchestrates appraiser assignment.
// Loads the authoritative order state, performs the assignment, and persists
// the order update together with an "appraiser_assigned" audit entry.
type AssignAppraiserCommandHandler struct {
	uowFactory WorkflowUoWFactory
}

// NewAssignAppraiserCommandHandler creates a handler for appraiser assignment.
func NewAssignAppraiserCommandHandler(uowFactory WorkflowUoWFactory) AssignAppraiserCommandHandler {
	return AssignAppraiserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command.
// The order update is a conditional write keyed on the loaded updatedAt, so a
// concurrent writer surfaces as a version conflict rather than a lost update.
func (h AssignAppraiserCommandHandler) Handle(ctx context.Context, cmd AssignAppraiserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	expectedUpdatedAt := o.UpdatedAt()
	previousStatus := o.Status()

	if err = o.AssignAppraiser(cmd.AppraiserID()); err != nil {
		return err
	}

	entry, err := activity.NewEntry(
		o.ID(), cmd.AssignedBy(), actor.RoleAdmin,
		activity.ActionAppraiserAssigned,
		previousStatus, o.Status(),
		fmt.Sprintf("appraiser %s assigned", cmd.AppraiserID()),
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o, expectedUpdatedAt); err != nil {
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
