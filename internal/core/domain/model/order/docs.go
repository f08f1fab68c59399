// Package order provides domain entities and business logic for appraisal
// order management. It implements the Order aggregate root with lifecycle
// management and role-gated state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, party references, and lifecycle
//   - Status: The workflow taxonomy with labels and terminal detection
//   - CanTransition/IsManualOverride: The role-gated transition rule table
//
// Key business rules:
//   - Orders must have a valid unique identifier and a property address
//   - Status follows the review workflow: new -> assigned -> in_progress ->
//     in_review -> {needs_revisions -> in_progress | ready_for_client} ->
//     sent_to_client -> complete
//   - Appraisers submit for review and resume after rejections; reviewers
//     approve or reject; admins hold every edge plus manual overrides
//   - Working states require an assigned appraiser
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
