package order

import (
	"errors"
	"fmt"
	"time"

	"falcon/internal/core/domain/model/actor"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents one appraisal engagement. It is the aggregate root that
// owns the order lifecycle: its status may only change through TransitionTo,
// which enforces the role-gated transition rules and field preconditions.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty property address
//   - Status is always a member of the taxonomy
//   - An order without an assigned appraiser cannot move into a working state
//   - UpdatedAt changes on every successful mutation (the persistence layer
//     keys its conditional writes on it)
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// clientID references the ordering client (nil if intake is incomplete)
	clientID *kernel.UUID

	// appraiserID references the assigned appraiser (nil if unassigned)
	appraiserID *kernel.UUID

	// reviewerID references the assigned reviewer (nil if unassigned)
	reviewerID *kernel.UUID

	// propertyAddress is the address of the property under appraisal
	propertyAddress string

	// status represents the current state in the order lifecycle
	status Status

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in StatusNew with validation. This is the only
// way to create a valid new Order, ensuring all business invariants hold.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - propertyAddress: Address of the property under appraisal (must be non-empty)
//   - clientID: Optional reference to the ordering client
//
// Returns the created order, or a validation error if any parameter is invalid.
func NewOrder(id kernel.UUID, propertyAddress string, clientID *kernel.UUID) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		status:        StatusNew,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setPropertyAddress(propertyAddress),
		order.setClientID(clientID),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence.
// Unlike NewOrder it accepts any valid status and the stored timestamps, but
// still validates every field so corrupt rows surface as errors rather than
// broken aggregates.
func RestoreOrder(
	id kernel.UUID,
	propertyAddress string,
	clientID, appraiserID, reviewerID *kernel.UUID,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setPropertyAddress(propertyAddress),
		order.setClientID(clientID),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	if appraiserID != nil {
		if err := appraiserID.Validate(); err != nil {
			return nil, err
		}
		order.appraiserID = appraiserID
	}
	if reviewerID != nil {
		if err := reviewerID.Validate(); err != nil {
			return nil, err
		}
		order.reviewerID = reviewerID
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the ordering client's ID, or nil.
func (o *Order) ClientID() *kernel.UUID {
	return o.clientID
}

// AppraiserID returns the assigned appraiser's ID, or nil if unassigned.
func (o *Order) AppraiserID() *kernel.UUID {
	return o.appraiserID
}

// ReviewerID returns the assigned reviewer's ID, or nil if unassigned.
func (o *Order) ReviewerID() *kernel.UUID {
	return o.reviewerID
}

// PropertyAddress returns the address of the property under appraisal.
func (o *Order) PropertyAddress() string {
	return o.propertyAddress
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp. The persistence layer uses
// this value as the expected version for conditional writes.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AssignAppraiser assigns the order to an appraiser and moves it to StatusAssigned.
//
// Business rules:
//   - The appraiser ID must be valid
//   - The order must be in StatusNew or StatusAssigned (reassignment is allowed)
//
// Returns ErrInvalidState-wrapped error if the order is past assignment.
func (o *Order) AssignAppraiser(appraiserID kernel.UUID) error {
	if err := appraiserID.Validate(); err != nil {
		return err
	}

	if o.status != StatusNew && o.status != StatusAssigned {
		return fmt.Errorf("%w: cannot assign an appraiser while order is %s",
			ErrInvalidState, o.status)
	}

	o.appraiserID = &appraiserID
	o.status = StatusAssigned
	o.touch()
	return nil
}

// AssignReviewer records the reviewer responsible for the order.
// Unlike appraiser assignment this does not move the status; reviewers may be
// attached at any point before completion.
func (o *Order) AssignReviewer(reviewerID kernel.UUID) error {
	if err := reviewerID.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return fmt.Errorf("%w: cannot assign a reviewer to a %s order",
			ErrInvalidState, o.status)
	}

	o.reviewerID = &reviewerID
	o.touch()
	return nil
}

// TransitionTo moves the order to the target status on behalf of the given role.
//
// The transition is validated against the role-gated rule table. Moving into a
// working state (see Status.RequiresAppraiser) requires an assigned appraiser
// unless the transition is an admin manual override, which bypasses field
// preconditions so bad data can be repaired.
//
// A self-transition is an idempotent no-op: it succeeds without mutating the
// order or touching UpdatedAt.
//
// Returns:
//   - (override, nil) on success, where override reports whether the edge was
//     forced outside the normal table (audited as "manual_override")
//   - (false, error) with the specific rule or precondition violation
func (o *Order) TransitionTo(to Status, role actor.Role) (bool, error) {
	if err := CanTransition(o.status, to, role); err != nil {
		return false, err
	}

	if to == o.status {
		return false, nil
	}

	override := IsManualOverride(o.status, to, role)
	if !override && to.RequiresAppraiser() && o.appraiserID == nil {
		return false, fmt.Errorf("%w: %s requires an assigned appraiser",
			ErrInvalidState, to)
	}

	o.status = to
	o.touch()
	return override, nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPropertyAddress(propertyAddress string) error {
	if propertyAddress == "" {
		return errs.NewValueIsRequiredError("propertyAddress")
	}
	o.propertyAddress = propertyAddress
	return nil
}

func (o *Order) setClientID(clientID *kernel.UUID) error {
	if clientID == nil {
		return nil
	}
	if err := clientID.Validate(); err != nil {
		return err
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
