package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents a driver's progress report on a
// delivery already in their hands.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	caller       services.Caller
	deliveryID   kernel.UUID
	status       delivery.Status
	failedReason string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to move a delivery to the
// given status. failedReason is only meaningful for the failed status; the
// aggregate enforces that pairing.
func NewUpdateDeliveryStatusCommand(
	caller services.Caller, deliveryID kernel.UUID, status delivery.Status, failedReason string,
) (UpdateDeliveryStatusCommand, error) {
	cmd := UpdateDeliveryStatusCommand{
		failedReason: failedReason,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCaller(caller),
		cmd.setDeliveryID(deliveryID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// Caller returns the authenticated identity issuing the command.
func (c UpdateDeliveryStatusCommand) Caller() services.Caller {
	return c.caller
}

// DeliveryID returns the delivery being updated.
func (c UpdateDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Status returns the target status.
func (c UpdateDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}

// FailedReason returns the explanation accompanying a failed status.
func (c UpdateDeliveryStatusCommand) FailedReason() string {
	return c.failedReason
}

func (c *UpdateDeliveryStatusCommand) setCaller(caller services.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *UpdateDeliveryStatusCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("deliveryId")
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setStatus(status delivery.Status) error {
	if err := status.ValidateUpdateTarget(); err != nil {
		return err
	}
	c.status = status
	return nil
}
