package commands

import (
	"errors"

	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrPropertyAddressIsRequired = errors.New("property address is required")
)

// CreateOrderCommand represents a request to register a new appraisal order.
// New orders start in "new" status and wait for appraiser assignment.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	propertyAddress string
	clientID        *kernel.UUID
	createdBy       kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new appraisal order.
// Validates that the order ID and creating actor are valid and the property
// address is not empty. The client reference is optional.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	propertyAddress string,
	clientID *kernel.UUID,
	createdBy kernel.UUID,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setPropertyAddress(propertyAddress),
		orderCommand.setClientID(clientID),
		orderCommand.setCreatedBy(createdBy),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PropertyAddress returns the address of the property under appraisal.
func (c CreateOrderCommand) PropertyAddress() string {
	return c.propertyAddress
}

// ClientID returns the optional ordering client reference.
func (c CreateOrderCommand) ClientID() *kernel.UUID {
	return c.clientID
}

// CreatedBy returns the identity of the actor registering the order.
func (c CreateOrderCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setPropertyAddress(propertyAddress string) error {
	if propertyAddress == "" {
		return ErrPropertyAddressIsRequired
	}

	c.propertyAddress = propertyAddress
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID *kernel.UUID) error {
	if clientID == nil {
		return nil
	}
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}

	c.createdBy = createdBy
	return nil
}
