package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRemoveDriverCommandIsNotConstructed = errors.New(
		"RemoveDriverCommand must be created via NewRemoveDriverCommand constructor",
	)

	// ErrDriverHasActiveDeliveries is returned when removal is attempted while
	// the driver still owns deliveries in an active status.
	ErrDriverHasActiveDeliveries = errors.New("driver has active deliveries")
)

// RemoveDriverCommand represents an admin request to remove a driver account.
type RemoveDriverCommand struct { //nolint:recvcheck //using for validation
	caller   services.Caller
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveDriverCommand creates a command to remove the driver account.
func NewRemoveDriverCommand(caller services.Caller, driverID kernel.UUID) (RemoveDriverCommand, error) {
	cmd := RemoveDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCaller(caller),
		cmd.setDriverID(driverID),
	); err != nil {
		return RemoveDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveDriverCommand) Validate() error {
	return c.guard.Validate(ErrRemoveDriverCommandIsNotConstructed)
}

// Caller returns the authenticated identity issuing the command.
func (c RemoveDriverCommand) Caller() services.Caller {
	return c.caller
}

// DriverID returns the account to remove.
func (c RemoveDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *RemoveDriverCommand) setCaller(caller services.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *RemoveDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("driverId")
	}
	c.driverID = driverID
	return nil
}
