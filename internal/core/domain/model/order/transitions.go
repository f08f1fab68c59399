package order

import (
	"errors"
	"fmt"

	"falcon/internal/core/domain/model/actor"
)

var (
	// ErrUnknownStatus is returned when a requested target status is not part
	// of the workflow taxonomy.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrForbiddenTransition is returned when the actor's role is not in the
	// allowed set for the requested transition edge.
	ErrForbiddenTransition = errors.New("transition is not permitted for this role")

	// ErrInvalidState is returned when a precondition on the order's fields is
	// unmet, e.g. moving into a working state without an assigned appraiser.
	ErrInvalidState = errors.New("order state does not permit this transition")
)

// edge identifies one directed transition in the workflow graph.
type edge struct {
	from Status
	to   Status
}

// allowedTransitions returns the role-gated transition table.
//
// Rules:
//   - appraiser submits for review (InProgress -> InReview) and resumes work
//     after a rejection (NeedsRevisions -> InProgress); no skipping, no
//     backward moves.
//   - reviewer rejects (InReview -> NeedsRevisions) or approves
//     (InReview -> ReadyForClient).
//   - admin holds every edge a lower role holds, plus delivery and closing
//     edges and the administrative progression edges at the front of the
//     workflow. Any admin transition outside this table is a manual override.
func allowedTransitions() map[edge][]actor.Role {
	return map[edge][]actor.Role{
		{StatusNew, StatusAssigned}:                {actor.RoleAdmin},
		{StatusAssigned, StatusInProgress}:         {actor.RoleAdmin},
		{StatusInProgress, StatusInReview}:         {actor.RoleAppraiser, actor.RoleAdmin},
		{StatusNeedsRevisions, StatusInProgress}:   {actor.RoleAppraiser, actor.RoleAdmin},
		{StatusInReview, StatusNeedsRevisions}:     {actor.RoleReviewer, actor.RoleAdmin},
		{StatusInReview, StatusReadyForClient}:     {actor.RoleReviewer, actor.RoleAdmin},
		{StatusReadyForClient, StatusSentToClient}: {actor.RoleAdmin},
		{StatusSentToClient, StatusComplete}:       {actor.RoleAdmin},
	}
}

// CanTransition decides whether the actor's role may move an order between
// the given statuses. A self-transition is always allowed (idempotent no-op).
// Admins may additionally force any edge as a manual override; every other
// (from, to, role) triple outside the table is forbidden.
//
// Returns:
//   - nil if the transition is allowed
//   - an ErrUnknownStatus-wrapped error for statuses outside the taxonomy
//   - an ErrForbiddenTransition-wrapped error for a role not on the edge
func CanTransition(from, to Status, role actor.Role) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}

	if from == to {
		return nil
	}

	if roles, ok := allowedTransitions()[edge{from, to}]; ok {
		for _, r := range roles {
			if r == role {
				return nil
			}
		}
	}

	// Admin may force any remaining edge as a manual override.
	if role == actor.RoleAdmin {
		return nil
	}

	return fmt.Errorf("%w: %s may not move an order from %s to %s",
		ErrForbiddenTransition, role, from, to)
}

// IsManualOverride reports whether the transition is an admin forcing an edge
// outside the normal table. Override transitions are audited with a distinct
// action tag and bypass field preconditions.
func IsManualOverride(from, to Status, role actor.Role) bool {
	if role != actor.RoleAdmin || from == to {
		return false
	}

	roles, ok := allowedTransitions()[edge{from, to}]
	if !ok {
		return true
	}
	for _, r := range roles {
		if r == role {
			return false
		}
	}
	return true
}

// RequiresAppraiser reports whether the status describes active appraisal
// work and therefore requires an assigned appraiser. Later delivery states do
// not re-check the assignment.
func (s Status) RequiresAppraiser() bool {
	return s == StatusInProgress || s == StatusInReview || s == StatusNeedsRevisions
}
