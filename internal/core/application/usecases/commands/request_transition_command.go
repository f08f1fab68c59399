package commands

import (
	"errors"

	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"
	"falcon/internal/pkg/guard"
)

var (
	ErrRequestTransitionCommandIsNotConstructed = errors.New(
		"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
	)
)

// RequestTransitionCommand represents a request to move an order to a new
// status on behalf of an authenticated actor.
//
// fromStatus is optional: when supplied (any status other than
// order.StatusUnknown) the engine compares it against the authoritative
// stored status and fails with a version conflict on disagreement, guarding
// against transitions issued from stale UI state.
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	fromStatus order.Status
	toStatus   order.Status
	actorID    kernel.UUID
	actorRole  actor.Role
	note       string

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a transition request.
//
// Parameters:
//   - orderID: the order to transition (must be a valid UUID)
//   - fromStatus: the status the caller believes the order is in, or
//     order.StatusUnknown to skip the stale-read check
//   - toStatus: the requested target status (must be in the taxonomy)
//   - actorID, actorRole: the acting identity and its role
//   - note: optional free-form note copied onto the audit entry
//
// An unrecognized toStatus fails here with an ErrUnknownStatus-wrapped
// error, before any persistence is touched.
func NewRequestTransitionCommand(
	orderID kernel.UUID,
	fromStatus, toStatus order.Status,
	actorID kernel.UUID,
	actorRole actor.Role,
	note string,
) (RequestTransitionCommand, error) {
	command := RequestTransitionCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setFromStatus(fromStatus),
		command.setToStatus(toStatus),
		command.setActor(actorID, actorRole),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c RequestTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FromStatus returns the caller's expected current status,
// or order.StatusUnknown when no stale-read check was requested.
func (c RequestTransitionCommand) FromStatus() order.Status {
	return c.fromStatus
}

// HasFromStatus reports whether the caller supplied an expected status.
func (c RequestTransitionCommand) HasFromStatus() bool {
	return c.fromStatus != order.StatusUnknown
}

// ToStatus returns the requested target status.
func (c RequestTransitionCommand) ToStatus() order.Status {
	return c.toStatus
}

// ActorID returns the acting identity.
func (c RequestTransitionCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting identity's role.
func (c RequestTransitionCommand) ActorRole() actor.Role {
	return c.actorRole
}

// Note returns the optional free-form note.
func (c RequestTransitionCommand) Note() string {
	return c.note
}

func (c *RequestTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestTransitionCommand) setFromStatus(fromStatus order.Status) error {
	if fromStatus == order.StatusUnknown {
		return nil
	}
	if err := fromStatus.Validate(); err != nil {
		return err
	}

	c.fromStatus = fromStatus
	return nil
}

func (c *RequestTransitionCommand) setToStatus(toStatus order.Status) error {
	if err := toStatus.Validate(); err != nil {
		return err
	}

	c.toStatus = toStatus
	return nil
}

func (c *RequestTransitionCommand) setActor(actorID kernel.UUID, actorRole actor.Role) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
