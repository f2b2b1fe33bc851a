package services

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrCallerIsNotConstructed is returned when a Caller was not created via NewCaller.
var ErrCallerIsNotConstructed = errors.New("Caller must be created via NewCaller constructor")

// Operation enumerates every action the access policy can rule on.
type Operation int

const (
	// OperationUnknown represents an invalid or undefined operation.
	OperationUnknown Operation = iota

	// OperationCreateDelivery creates a delivery and assigns it to a driver.
	OperationCreateDelivery
	// OperationListDeliveries lists/filters all deliveries.
	OperationListDeliveries
	// OperationListDrivers lists all driver accounts.
	OperationListDrivers
	// OperationViewDriver reads a specific driver account.
	OperationViewDriver
	// OperationRemoveDriver deletes a driver account.
	OperationRemoveDriver
	// OperationViewDelivery reads a specific delivery.
	OperationViewDelivery
	// OperationDecideDelivery accepts or rejects an assigned delivery.
	OperationDecideDelivery
	// OperationUpdateDeliveryStatus reports a delivery status change.
	OperationUpdateDeliveryStatus
)

// String returns a short name for the operation, used in denial messages.
func (o Operation) String() string {
	switch o {
	case OperationCreateDelivery:
		return "create delivery"
	case OperationListDeliveries:
		return "list deliveries"
	case OperationListDrivers:
		return "list drivers"
	case OperationViewDriver:
		return "view driver"
	case OperationRemoveDriver:
		return "remove driver"
	case OperationViewDelivery:
		return "view delivery"
	case OperationDecideDelivery:
		return "accept or reject delivery"
	case OperationUpdateDeliveryStatus:
		return "update delivery status"
	default:
		return "unknown"
	}
}

// Caller is the resolved identity on whose behalf an operation runs.
// It carries only what the access policy needs: the account ID for ownership
// checks and the role for role gating.
type Caller struct {
	id   kernel.UUID
	role account.Role

	isConstructed bool
}

// NewCaller creates a validated Caller identity.
func NewCaller(id kernel.UUID, role account.Role) (Caller, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Caller{}, err
	}
	return Caller{id: id, role: role, isConstructed: true}, nil
}

// Validate ensures the Caller was created through NewCaller.
func (c Caller) Validate() error {
	if !c.isConstructed {
		return ErrCallerIsNotConstructed
	}
	return nil
}

// ID returns the caller's account identifier.
func (c Caller) ID() kernel.UUID {
	return c.id
}

// Role returns the caller's role.
func (c Caller) Role() account.Role {
	return c.role
}

// AccessPolicy is the pure authorization decision function consulted before
// every state-mutating operation and every protected read.
//
// Decisions are deterministic and side-effect-free: the policy never mutates
// state or touches storage. A denial names the violated rule so the HTTP
// layer can surface it in the 403 envelope.
//
// Rules:
//
//	| Operation                | Required role            | Ownership check           |
//	|--------------------------|--------------------------|---------------------------|
//	| create delivery          | admin                    | none (driver existence is |
//	|                          |                          | checked by the command)   |
//	| list deliveries          | admin                    | none                      |
//	| list drivers             | admin                    | none                      |
//	| view/remove driver       | admin                    | none                      |
//	| view delivery            | admin OR assigned driver | driver: caller owns it    |
//	| accept/reject delivery   | driver                   | caller owns it            |
//	| update delivery status   | driver                   | caller owns it            |
type AccessPolicy struct{}

// NewAccessPolicy creates the access policy decision service.
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanPerform decides whether caller may execute op against target.
// target is required for delivery-scoped operations and ignored otherwise.
// Returns nil to allow, an AccessDeniedError naming the violated rule to deny.
func (p AccessPolicy) CanPerform(caller Caller, op Operation, target *delivery.Delivery) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	switch op {
	case OperationCreateDelivery, OperationListDeliveries, OperationListDrivers,
		OperationViewDriver, OperationRemoveDriver:
		return p.requireAdmin(caller, op)

	case OperationViewDelivery:
		if target == nil {
			return errs.NewValueIsRequiredError("delivery")
		}
		return p.requireAdminOrAssignedDriver(caller, op, target)

	case OperationDecideDelivery, OperationUpdateDeliveryStatus:
		if target == nil {
			return errs.NewValueIsRequiredError("delivery")
		}
		return p.requireAssignedDriver(caller, op, target)

	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"operation", fmt.Errorf("%d is not a valid operation", op))
	}
}

func (p AccessPolicy) requireAdmin(caller Caller, op Operation) error {
	switch caller.role {
	case account.RoleAdmin:
		return nil
	case account.RoleDriver:
		return errs.NewAccessDeniedError(
			fmt.Sprintf("admin role required to %s", op))
	default:
		return errs.NewAccessDeniedError(
			fmt.Sprintf("role %s is not authorized to %s", caller.role, op))
	}
}

func (p AccessPolicy) requireAdminOrAssignedDriver(caller Caller, op Operation, target *delivery.Delivery) error {
	switch caller.role {
	case account.RoleAdmin:
		return nil
	case account.RoleDriver:
		if target.IsAssignedTo(caller.id) {
			return nil
		}
		return errs.NewAccessDeniedError(
			fmt.Sprintf("only the assigned driver or an admin may %s", op))
	default:
		return errs.NewAccessDeniedError(
			fmt.Sprintf("role %s is not authorized to %s", caller.role, op))
	}
}

func (p AccessPolicy) requireAssignedDriver(caller Caller, op Operation, target *delivery.Delivery) error {
	switch caller.role {
	case account.RoleDriver:
		if target.IsAssignedTo(caller.id) {
			return nil
		}
		return errs.NewAccessDeniedError(
			fmt.Sprintf("only the assigned driver may %s", op))
	case account.RoleAdmin:
		return errs.NewAccessDeniedError(
			fmt.Sprintf("only the assigned driver may %s, admin supervision does not extend to it", op))
	default:
		return errs.NewAccessDeniedError(
			fmt.Sprintf("role %s is not authorized to %s", caller.role, op))
	}
}
