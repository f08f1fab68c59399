// Package services contains stateless domain services that implement business
// logic spanning multiple aggregates.
//
// The package includes:
//   - NotificationRouter: maps a committed workflow transition to the set of
//     recipients who should hear about it
//
// Domain services hold no state and are safe for concurrent use.
package services
