package order

import (
	"fmt"
	"strings"

	"falcon/internal/pkg/errs"
)

// Status represents the lifecycle state of an appraisal order.
// It implements a state machine with role-gated transitions to ensure
// orders follow the correct review workflow.
//
// State transitions:
//
//	New ──> Assigned ──> InProgress ──> InReview ──┬──> ReadyForClient ──> SentToClient ──> Complete
//	                          ^                    │
//	                          └── NeedsRevisions <─┘
//	                            (rework loop)
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusNew is the initial status when an order is first created.
	// Orders in this status are waiting to be assigned to an appraiser.
	StatusNew

	// StatusAssigned indicates the order has an appraiser assigned
	// but work has not started yet.
	StatusAssigned

	// StatusInProgress indicates the appraiser is actively working the order.
	StatusInProgress

	// StatusInReview indicates the appraisal was submitted and is awaiting review.
	StatusInReview

	// StatusNeedsRevisions indicates the reviewer rejected the appraisal
	// and it must go back to the appraiser for rework.
	StatusNeedsRevisions

	// StatusReadyForClient indicates the review passed and the report
	// can be delivered to the client.
	StatusReadyForClient

	// StatusSentToClient indicates the report was delivered to the client.
	StatusSentToClient

	// StatusComplete indicates the engagement is finished.
	// This is a final state with no further transitions allowed.
	StatusComplete
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusNew:            "new",
		StatusAssigned:       "assigned",
		StatusInProgress:     "in_progress",
		StatusInReview:       "in_review",
		StatusNeedsRevisions: "needs_revisions",
		StatusReadyForClient: "ready_for_client",
		StatusSentToClient:   "sent_to_client",
		StatusComplete:       "complete",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusNew:            "new",
		StatusAssigned:       "assigned",
		StatusInProgress:     "in_progress",
		StatusInReview:       "in_review",
		StatusNeedsRevisions: "needs_revisions",
		StatusReadyForClient: "ready_for_client",
		StatusSentToClient:   "sent_to_client",
		StatusComplete:       "complete",
	}
}

// AllStatuses returns every valid status in its fixed workflow order.
// The ordering is meaningful for UI display and must not change.
func AllStatuses() []Status {
	return []Status{
		StatusNew,
		StatusAssigned,
		StatusInProgress,
		StatusInReview,
		StatusNeedsRevisions,
		StatusReadyForClient,
		StatusSentToClient,
		StatusComplete,
	}
}

// StatusFromString parses the wire form of a status ("in_progress" etc.).
// Returns ErrUnknownStatus-wrapped error for unrecognized status strings.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q: %w", s, ErrUnknownStatus),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are the eight workflow states; StatusUnknown (0) and any
// other values are invalid. This method is used to ensure Status values from
// external sources (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d: %w", s, ErrUnknownStatus),
		)
	}
	return nil
}

// String returns the wire form of the status (snake_case).
//
// Implements the fmt.Stringer interface and is safe to call on any Status
// value, including invalid ones, which render as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Label returns the human-readable name of the status, derived from the wire
// form by title-casing each word ("ready_for_client" -> "Ready For Client").
//
// Unrecognized status values fail soft and render a placeholder label rather
// than panicking, so display code never crashes on bad data.
func (s Status) Label() string {
	str, ok := getValidStatusStrings()[s]
	if !ok {
		return "Unknown Status"
	}

	words := strings.Split(str, "_")
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// IsTerminal reports whether the status is a final state.
// Only StatusComplete is terminal.
func (s Status) IsTerminal() bool {
	return s == StatusComplete
}
