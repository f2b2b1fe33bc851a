package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrDecideDeliveryCommandIsNotConstructed = errors.New(
	"DecideDeliveryCommand must be created via NewDecideDeliveryCommand constructor",
)

// DecideDeliveryCommand represents a driver's accept or reject decision on an
// assigned delivery.
type DecideDeliveryCommand struct { //nolint:recvcheck //using for validation
	caller     services.Caller
	deliveryID kernel.UUID
	action     delivery.Action

	guard guard.ConstructorGuard
}

// NewDecideDeliveryCommand creates a command for a driver to accept or reject
// a delivery.
func NewDecideDeliveryCommand(
	caller services.Caller, deliveryID kernel.UUID, action delivery.Action,
) (DecideDeliveryCommand, error) {
	cmd := DecideDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCaller(caller),
		cmd.setDeliveryID(deliveryID),
		cmd.setAction(action),
	); err != nil {
		return DecideDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DecideDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDecideDeliveryCommandIsNotConstructed)
}

// Caller returns the authenticated identity issuing the command.
func (c DecideDeliveryCommand) Caller() services.Caller {
	return c.caller
}

// DeliveryID returns the delivery being decided.
func (c DecideDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Action returns the decision, accept or reject.
func (c DecideDeliveryCommand) Action() delivery.Action {
	return c.action
}

func (c *DecideDeliveryCommand) setCaller(caller services.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *DecideDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("deliveryId")
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *DecideDeliveryCommand) setAction(action delivery.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}
	c.action = action
	return nil
}
