package commands

import (
	"errors"

	"falcon/internal/pkg/guard"
)

var (
	ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
		"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
	)
)

// DispatchNotificationsCommand triggers delivery of all pending outbox
// notifications. This batch operation is run periodically by the scheduler.
type DispatchNotificationsCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchNotificationsCommand creates a command to flush the
// notification outbox. This is a parameterless command that processes all
// pending notifications.
func NewDispatchNotificationsCommand() DispatchNotificationsCommand {
	command := DispatchNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}
