package commands

import (
	"errors"

	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/pkg/guard"
)

var (
	ErrAssignAppraiserCommandIsNotConstructed = errors.New(
		"AssignAppraiserCommand must be created via NewAssignAppraiserCommand constructor",
	)
)

// AssignAppraiserCommand represents a request to assign (or reassign) an
// appraiser to an order. Assignment moves the order into "assigned" status.
type AssignAppraiserCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	appraiserID kernel.UUID
	assignedBy  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignAppraiserCommand creates a command to assign an appraiser to an order.
// All three identifiers must be valid UUIDs.
func NewAssignAppraiserCommand(orderID, appraiserID, assignedBy kernel.UUID) (AssignAppraiserCommand, error) {
	command := AssignAppraiserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setAppraiserID(appraiserID),
		command.setAssignedBy(assignedBy),
	); err != nil {
		return AssignAppraiserCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignAppraiserCommand) Validate() error {
	return c.guard.Validate(ErrAssignAppraiserCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignAppraiserCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AppraiserID returns the appraiser receiving the assignment.
func (c AssignAppraiserCommand) AppraiserID() kernel.UUID {
	return c.appraiserID
}

// AssignedBy returns the admin performing the assignment.
func (c AssignAppraiserCommand) AssignedBy() kernel.UUID {
	return c.assignedBy
}

func (c *AssignAppraiserCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignAppraiserCommand) setAppraiserID(appraiserID kernel.UUID) error {
	if err := appraiserID.Validate(); err != nil {
		return err
	}

	c.appraiserID = appraiserID
	return nil
}

func (c *AssignAppraiserCommand) setAssignedBy(assignedBy kernel.UUID) error {
	if err := assignedBy.Validate(); err != nil {
		return err
	}

	c.assignedBy = assignedBy
	return nil
}
