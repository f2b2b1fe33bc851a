package delivery

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not created
	// through the NewDelivery or RestoreDelivery factory methods.
	ErrDeliveryIsNotConstructed = errors.New(
		"Delivery must be created via NewDelivery or RestoreDelivery constructor")

	// ErrDeliveryIsUnassigned is returned when an accept/reject decision is
	// attempted on a delivery that has no driver.
	ErrDeliveryIsUnassigned = errors.New("delivery has no assigned driver")

	// ErrFailedReasonIsRequired is returned when a delivery is marked Failed
	// without a failure reason.
	ErrFailedReasonIsRequired = errs.NewValueIsRequiredError("failedReason")
)

// Delivery represents a shipment task. It is the aggregate root that manages
// the delivery lifecycle from creation through driver acceptance to completion
// or failure.
//
// Delivery follows these invariants:
//   - Must have a valid unique identifier
//   - Receiver name, address and phone are mandatory
//   - References at most one driver at a time
//   - failedReason is present if and only if status is Failed
//   - Rejection atomically clears the driver and resets status to Pending
//   - Can only be created through NewDelivery or RestoreDelivery
//
// Driver-reported status updates are deliberately not order-constrained:
// the engine accepts En-Route before Picked-Up and allows leaving Failed.
// Leaving Failed clears the stale failure reason.
type Delivery struct {
	// id is the unique identifier for the delivery
	id kernel.UUID

	// driverID is the assigned driver's account ID (nil if unassigned)
	driverID *kernel.UUID

	receiverName string
	address      string
	phone        string

	// description is optional free text about the package
	description string

	// status represents the current state in the delivery lifecycle
	status Status

	// failedReason is set only while status is Failed
	failedReason *string

	// isConstructed ensures the delivery was created via a constructor
	isConstructed bool
}

// NewDelivery creates a new Delivery with validation. Deliveries are always
// created with a driver already assigned (creation is an admin operation that
// includes assignment) and start in Pending status with no failure reason.
func NewDelivery(
	id kernel.UUID,
	receiverName, address, phone, description string,
	driverID kernel.UUID,
) (*Delivery, error) {
	d := &Delivery{
		status:        StatusPending,
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setReceiverName(receiverName),
		d.setAddress(address),
		d.setPhone(phone),
	); err != nil {
		return nil, err
	}

	if err := d.Assign(driverID); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence.
// All invariants are re-validated, including the failedReason/Failed pairing,
// so corrupted rows cannot produce an invalid aggregate.
func RestoreDelivery(
	id kernel.UUID,
	receiverName, address, phone, description string,
	status Status,
	driverID *kernel.UUID,
	failedReason *string,
) (*Delivery, error) {
	d := &Delivery{
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setReceiverName(receiverName),
		d.setAddress(address),
		d.setPhone(phone),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if (failedReason != nil) != (status == StatusFailed) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"failedReason",
			fmt.Errorf("failedReason must be set exactly when status is %s, got status %s", StatusFailed, status))
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		d.driverID = driverID
	}

	d.status = status
	d.failedReason = failedReason
	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// ReceiverName returns the recipient's name.
func (d *Delivery) ReceiverName() string {
	return d.receiverName
}

// Address returns the delivery address.
func (d *Delivery) Address() string {
	return d.address
}

// Phone returns the receiver's phone number.
func (d *Delivery) Phone() string {
	return d.phone
}

// Description returns the optional package description.
func (d *Delivery) Description() string {
	return d.description
}

// Status returns the current status of the delivery.
func (d *Delivery) Status() Status {
	return d.status
}

// DriverID returns the assigned driver's account ID.
// Returns nil if no driver is assigned.
func (d *Delivery) DriverID() *kernel.UUID {
	return d.driverID
}

// FailedReason returns the failure reason, non-nil only while status is Failed.
func (d *Delivery) FailedReason() *string {
	return d.failedReason
}

// IsAssignedTo reports whether the delivery is currently assigned to the
// given driver account. Ownership checks in the access policy rely on this.
func (d *Delivery) IsAssignedTo(driverID kernel.UUID) bool {
	return d.driverID != nil && d.driverID.IsEqual(driverID)
}

// Assign assigns the delivery to a driver.
// Used at creation and when an admin reassigns a rejected delivery.
func (d *Delivery) Assign(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	d.driverID = &driverID
	return nil
}

// Decide applies the driver's accept or reject decision.
func (d *Delivery) Decide(action Action) error {
	if err := action.Validate(); err != nil {
		return err
	}

	if action == ActionAccept {
		return d.Accept()
	}
	return d.Reject()
}

// Accept confirms the assignment: Pending -> Picked-Up.
// Fails if no driver is assigned or the delivery is not Pending.
func (d *Delivery) Accept() error {
	if d.driverID == nil {
		return ErrDeliveryIsUnassigned
	}

	newStatus, err := d.status.Accept()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// Reject declines the assignment: the driver is cleared and the status is
// reset to Pending in a single step, making the delivery available for
// reassignment. Any stale failure reason is dropped with the status.
func (d *Delivery) Reject() error {
	if d.driverID == nil {
		return ErrDeliveryIsUnassigned
	}

	d.driverID = nil
	d.status = StatusPending
	d.failedReason = nil
	return nil
}

// UpdateStatus applies a driver-reported status change.
//
// The target must be Picked-Up, En-Route, Delivered or Failed. Failed
// requires a non-empty failure reason; any other target clears the reason so
// the failedReason/Failed pairing invariant holds. Ordering between the
// driver-reported statuses is intentionally not enforced.
func (d *Delivery) UpdateStatus(status Status, failedReason *string) error {
	if err := status.ValidateUpdateTarget(); err != nil {
		return err
	}

	if status == StatusFailed {
		if failedReason == nil || *failedReason == "" {
			return ErrFailedReasonIsRequired
		}
		d.failedReason = failedReason
	} else {
		d.failedReason = nil
	}

	d.status = status
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setReceiverName(receiverName string) error {
	if receiverName == "" {
		return errs.NewValueIsRequiredError("receiverName")
	}
	d.receiverName = receiverName
	return nil
}

func (d *Delivery) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	d.address = address
	return nil
}

func (d *Delivery) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	d.phone = phone
	return nil
}
