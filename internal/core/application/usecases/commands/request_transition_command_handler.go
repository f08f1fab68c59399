package commands

import (
	"context"
	"log/slog"

	"falcon/internal/core/domain/model/activity"
	"falcon/internal/core/domain/model/order"
	"falcon/internal/core/domain/services"
	"falcon/internal/pkg/errs"
)

// RequestTransitionResult carries the post-transition order and the audit
// entry the transition produced. Entry is nil when the request was a no-op
// (target equals current status and no note was supplied).
type RequestTransitionResult struct {
	Order *order.Order
	Entry *activity.Entry
}

// RequestTransitionCommandHandler is the workflow engine. It loads the
// authoritative order, checks the transition against the role-gated rule
// table, mutates the aggregate, and persists the order update together with
// its audit entry in one transaction. The order write is conditional on the
// updatedAt loaded at the start, so two actors racing on the same order
// cannot silently overwrite each other.
//
// Notification fan-out happens after commit in a separate transaction and is
// best effort: a failed outbox write is logged, never surfaced to the caller.
type RequestTransitionCommandHandler struct {
	uowFactory UoWFactory
	router     services.NotificationRouter
	logger     *slog.Logger
}

// NewRequestTransitionCommandHandler creates the workflow engine handler.
func NewRequestTransitionCommandHandler(
	uowFactory UoWFactory,
	router services.NotificationRouter,
	logger *slog.Logger,
) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		uowFactory: uowFactory,
		router:     router,
		logger:     logger,
	}
}

// Handle processes one transition request.
//
// Sequence:
//  1. Load the order inside a transaction.
//  2. If the caller supplied an expected status and it disagrees with the
//     stored one, fail with a version conflict (stale read).
//  3. A request targeting the current status is a no-op: the order is not
//     touched, though a supplied note still lands in the audit trail.
//  4. Otherwise apply the transition through the aggregate, which enforces
//     the rule table and the appraiser precondition.
//  5. Persist the order conditionally on its loaded updatedAt, append the
//     audit entry, commit.
//  6. Fan out notifications post-commit, best effort.
func (h RequestTransitionCommandHandler) Handle(
	ctx context.Context, cmd RequestTransitionCommand,
) (RequestTransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return RequestTransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RequestTransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return RequestTransitionResult{}, err
	}

	if cmd.HasFromStatus() && cmd.FromStatus() != o.Status() {
		return RequestTransitionResult{}, errs.NewVersionConflictError("order", cmd.OrderID())
	}

	if cmd.ToStatus() == o.Status() {
		return h.handleNoOp(ctx, uow, o, cmd)
	}

	expectedUpdatedAt := o.UpdatedAt()
	previousStatus := o.Status()

	override, err := o.TransitionTo(cmd.ToStatus(), cmd.ActorRole())
	if err != nil {
		return RequestTransitionResult{}, err
	}

	action := activity.ActionStatusChange
	if override {
		action = activity.ActionManualOverride
	}

	entry, err := activity.NewEntry(
		o.ID(), cmd.ActorID(), cmd.ActorRole(),
		action,
		previousStatus, o.Status(),
		cmd.Note(),
	)
	if err != nil {
		return RequestTransitionResult{}, err
	}

	if err = orderRepo.Update(ctx, o, expectedUpdatedAt); err != nil {
		return RequestTransitionResult{}, err
	}

	if err = uow.ActivityRepository().Append(ctx, entry); err != nil {
		return RequestTransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RequestTransitionResult{}, err
	}

	h.notify(ctx, o, entry)

	return RequestTransitionResult{Order: o, Entry: entry}, nil
}

// handleNoOp finishes a request whose target equals the current status.
// The order itself stays untouched; a non-empty note is still recorded as a
// comment so reviewers can leave remarks without moving the order.
func (h RequestTransitionCommandHandler) handleNoOp(
	ctx context.Context, uow UoW, o *order.Order, cmd RequestTransitionCommand,
) (RequestTransitionResult, error) {
	if cmd.Note() == "" {
		if err := uow.Commit(ctx); err != nil {
			return RequestTransitionResult{}, err
		}
		return RequestTransitionResult{Order: o}, nil
	}

	entry, err := activity.NewEntry(
		o.ID(), cmd.ActorID(), cmd.ActorRole(),
		activity.ActionComment,
		o.Status(), o.Status(),
		cmd.Note(),
	)
	if err != nil {
		return RequestTransitionResult{}, err
	}

	if err = uow.ActivityRepository().Append(ctx, entry); err != nil {
		return RequestTransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RequestTransitionResult{}, err
	}

	return RequestTransitionResult{Order: o, Entry: entry}, nil
}

// notify writes the outbox notifications for a committed transition.
// The transition already succeeded, so every failure here is logged and
// swallowed. The dispatch job picks up whatever landed in the outbox.
func (h RequestTransitionCommandHandler) notify(ctx context.Context, o *order.Order, entry *activity.Entry) {
	// The transition is committed at this point. Detach from the request
	// context so a caller disconnect cannot drop the outbox write.
	ctx = context.WithoutCancel(ctx)

	notifications, err := h.router.Route(o, entry)
	if err != nil {
		h.logger.Error("notification routing failed",
			"order_id", o.ID(), "error", err)
		return
	}
	if len(notifications) == 0 {
		return
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.logger.Error("notification outbox transaction failed",
			"order_id", o.ID(), "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	for _, n := range notifications {
		if err = uow.NotificationRepository().Add(ctx, n); err != nil {
			h.logger.Error("notification outbox write failed",
				"order_id", o.ID(), "error", err)
			return
		}
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.Error("notification outbox commit failed",
			"order_id", o.ID(), "error", err)
	}
}
