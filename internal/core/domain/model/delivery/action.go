package delivery

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Action is the driver's response to an assigned delivery.
// Only the two literals "accept" and "reject" are valid.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionAccept confirms the assignment: the delivery moves to Picked-Up.
	ActionAccept

	// ActionReject declines the assignment: the delivery returns to Pending
	// with no driver and becomes available for reassignment.
	ActionReject
)

// ActionFromString parses the request literal into an Action.
// Anything other than "accept" or "reject" is invalid.
func ActionFromString(s string) (Action, error) {
	switch s {
	case "accept":
		return ActionAccept, nil
	case "reject":
		return ActionReject, nil
	default:
		return ActionUnknown, errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("%q is not a valid action, expected accept or reject", s))
	}
}

// Validate checks if the Action value is valid.
func (a Action) Validate() error {
	if a != ActionAccept && a != ActionReject {
		return errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// String returns the request literal for the action.
func (a Action) String() string {
	switch a {
	case ActionAccept:
		return "accept"
	case ActionReject:
		return "reject"
	default:
		return "unknown"
	}
}
