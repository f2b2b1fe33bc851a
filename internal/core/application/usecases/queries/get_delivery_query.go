package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves a single delivery by identifier.
// Admins may view any delivery; a driver may only view one assigned to them.
type GetDeliveryQuery struct {
	caller     services.Caller
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query for one delivery.
func NewGetDeliveryQuery(caller services.Caller, deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, errs.NewValueIsRequiredError("deliveryId")
	}

	return GetDeliveryQuery{
		caller:     caller,
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// Caller returns the authenticated identity issuing the query.
func (q GetDeliveryQuery) Caller() services.Caller {
	return q.caller
}

// DeliveryID returns the delivery to fetch.
func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// GetDeliveryQueryResponse represents one delivery in the single-read model.
type GetDeliveryQueryResponse struct {
	ID           kernel.UUID
	ReceiverName string
	Address      string
	Phone        string
	Description  string
	Status       delivery.Status
	FailedReason *string
	DriverID     *kernel.UUID
	CreatedAt    time.Time
}
