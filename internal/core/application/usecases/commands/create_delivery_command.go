package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents an admin request to create a delivery
// assigned to a driver.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	caller       services.Caller
	receiverName string
	address      string
	phone        string
	description  string
	driverID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to create a delivery.
// Description is optional; the rest of the fields are mandatory. Deliveries
// are always born assigned, so driverID must be a valid UUID here and must
// resolve to an existing account in the handler.
func NewCreateDeliveryCommand(
	caller services.Caller, receiverName, address, phone, description string, driverID kernel.UUID,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCaller(caller),
		cmd.setReceiverName(receiverName),
		cmd.setAddress(address),
		cmd.setPhone(phone),
		cmd.setDriverID(driverID),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// Caller returns the authenticated identity issuing the command.
func (c CreateDeliveryCommand) Caller() services.Caller {
	return c.caller
}

// ReceiverName returns the recipient's name.
func (c CreateDeliveryCommand) ReceiverName() string {
	return c.receiverName
}

// Address returns the destination address.
func (c CreateDeliveryCommand) Address() string {
	return c.address
}

// Phone returns the recipient's contact phone.
func (c CreateDeliveryCommand) Phone() string {
	return c.phone
}

// Description returns the optional free-text note.
func (c CreateDeliveryCommand) Description() string {
	return c.description
}

// DriverID returns the driver the delivery is assigned to.
func (c CreateDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *CreateDeliveryCommand) setCaller(caller services.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *CreateDeliveryCommand) setReceiverName(receiverName string) error {
	if receiverName == "" {
		return errs.NewValueIsRequiredError("receiverName")
	}
	c.receiverName = receiverName
	return nil
}

func (c *CreateDeliveryCommand) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	c.address = address
	return nil
}

func (c *CreateDeliveryCommand) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *CreateDeliveryCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("driverId")
	}
	c.driverID = driverID
	return nil
}
