// Package activity provides the append-only audit trail for order workflow
// actions. Every attempted and successful status transition produces an Entry;
// entries are never mutated or deleted once created.
package activity

import (
	"errors"
	"time"

	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/core/domain/model/order"
	"falcon/internal/pkg/errs"
)

// Action tags classify audit entries. They are stored as free-form strings so
// history written by older versions keeps rendering.
const (
	ActionStatusChange      = "status_change"
	ActionManualOverride    = "manual_override"
	ActionComment           = "comment"
	ActionOrderCreated      = "order_created"
	ActionAppraiserAssigned = "appraiser_assigned"
)

var (
	// ErrEntryIsNotConstructed is returned when an Entry instance was not created
	// through the NewEntry or RestoreEntry factory methods.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry constructor")
)

// Entry is one immutable audit record tied to an order.
//
// Invariants:
//   - Once created, an entry is never mutated or deleted
//   - PreviousStatus/NewStatus capture the transition the entry documents;
//     for non-transition actions (comments, creation) both carry the order's
//     status at the time of the action
//   - Entries referencing a deleted order are tolerated as history
type Entry struct {
	id             kernel.UUID
	orderID        kernel.UUID
	actorID        kernel.UUID
	actorRole      actor.Role
	action         string
	previousStatus order.Status
	newStatus      order.Status
	message        string
	createdAt      time.Time

	isConstructed bool
}

// NewEntry creates an audit entry stamped with the current time.
//
// Parameters:
//   - orderID, actorID: must be valid UUIDs
//   - actorRole: must be a valid role
//   - action: non-empty action tag (see the Action constants)
//   - previousStatus, newStatus: the documented transition (equal for
//     non-transition actions)
//   - message: optional free-form note
func NewEntry(
	orderID, actorID kernel.UUID,
	actorRole actor.Role,
	action string,
	previousStatus, newStatus order.Status,
	message string,
) (*Entry, error) {
	entry := &Entry{
		id:            kernel.NewUUID(),
		message:       message,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		entry.setOrderID(orderID),
		entry.setActor(actorID, actorRole),
		entry.setAction(action),
		entry.setStatuses(previousStatus, newStatus),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// RestoreEntry reconstructs an Entry from persistence with its original
// identifier and timestamp.
func RestoreEntry(
	id, orderID, actorID kernel.UUID,
	actorRole actor.Role,
	action string,
	previousStatus, newStatus order.Status,
	message string,
	createdAt time.Time,
) (*Entry, error) {
	entry := &Entry{
		message:       message,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setOrderID(orderID),
		entry.setActor(actorID, actorRole),
		entry.setAction(action),
		entry.setStatuses(previousStatus, newStatus),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate ensures the Entry was properly constructed through a factory method.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this entry belongs to.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// ActorID returns the identity that performed the action.
func (e *Entry) ActorID() kernel.UUID {
	return e.actorID
}

// ActorRole returns the role the actor held when acting.
func (e *Entry) ActorRole() actor.Role {
	return e.actorRole
}

// Action returns the action tag.
func (e *Entry) Action() string {
	return e.action
}

// PreviousStatus returns the order status before the documented action.
func (e *Entry) PreviousStatus() order.Status {
	return e.previousStatus
}

// NewStatus returns the order status after the documented action.
func (e *Entry) NewStatus() order.Status {
	return e.newStatus
}

// Message returns the optional free-form note.
func (e *Entry) Message() string {
	return e.message
}

// CreatedAt returns the entry timestamp. Display ordering is newest first.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Entry) setActor(actorID kernel.UUID, actorRole actor.Role) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := actorRole.Validate(); err != nil {
		return err
	}
	e.actorID = actorID
	e.actorRole = actorRole
	return nil
}

func (e *Entry) setAction(action string) error {
	if action == "" {
		return errs.NewValueIsRequiredError("action")
	}
	e.action = action
	return nil
}

func (e *Entry) setStatuses(previousStatus, newStatus order.Status) error {
	if err := previousStatus.Validate(); err != nil {
		return err
	}
	if err := newStatus.Validate(); err != nil {
		return err
	}
	e.previousStatus = previousStatus
	e.newStatus = newStatus
	return nil
}
