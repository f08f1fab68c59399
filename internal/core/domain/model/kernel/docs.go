// Package kernel provides shared value objects used across the domain model.
//
// The package contains the UUID identity type used by every aggregate in the
// workflow engine. Value objects in this package are immutable, validated at
// construction, and safe for concurrent use.
package kernel
