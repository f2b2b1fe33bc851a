package delivery

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions:
//
//	Pending ──accept──> Picked-Up ──┐
//	   ^                            │
//	   └────────reject──────────────┤ (reject also clears the driver)
//	                                │
//	        Picked-Up / En-Route / Delivered / Failed
//	          (driver-reported, not order-constrained)
//
// Driver-reported status updates may move between Picked-Up, En-Route,
// Delivered and Failed in any order; the engine deliberately does not
// enforce forward-only progression. Pending is reachable only through
// rejection, which atomically unassigns the driver.
//
// Status is a value object that validates transitions and provides string
// representations for persistence and the HTTP surface.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when a delivery is created.
	// A pending delivery with no driver is awaiting reassignment.
	StatusPending

	// StatusPickedUp indicates the assigned driver has accepted and
	// collected the package.
	StatusPickedUp

	// StatusEnRoute indicates the package is on its way to the receiver.
	StatusEnRoute

	// StatusDelivered indicates the package reached the receiver.
	StatusDelivered

	// StatusFailed indicates delivery did not complete; a failure reason
	// is mandatory in this status.
	StatusFailed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusPickedUp:  "Picked-Up",
		StatusEnRoute:   "En-Route",
		StatusDelivered: "Delivered",
		StatusFailed:    "Failed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "Pending",
		StatusPickedUp:  "Picked-Up",
		StatusEnRoute:   "En-Route",
		StatusDelivered: "Delivered",
		StatusFailed:    "Failed",
	}
}

// StatusFromString parses a string representation into a Status.
// Used for request parsing and the admin status filter.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are Pending, Picked-Up, En-Route, Delivered and Failed.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsActive reports whether the status represents in-flight work.
// Pending, Picked-Up and En-Route deliveries are active; Delivered and
// Failed are settled. Driver removal is blocked while active deliveries exist.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusPickedUp || s == StatusEnRoute
}

// Accept transitions the status to Picked-Up.
//
// Valid transitions:
//   - Pending -> Picked-Up
//
// Returns the new status, or an error if the delivery is not Pending.
func (s Status) Accept() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to accept", s.String()),
		)
	}
	return StatusPickedUp, nil
}

// ValidateUpdateTarget checks whether the status is a legal target for a
// driver-reported status update. Drivers may report Picked-Up, En-Route,
// Delivered or Failed; Pending is reachable only through rejection.
func (s Status) ValidateUpdateTarget() error {
	switch s {
	case StatusPickedUp, StatusEnRoute, StatusDelivered, StatusFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to update to", s.String()),
		)
	}
}
