package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriversQueryIsNotConstructed = errors.New(
	"GetDriversQuery must be created via NewGetDriversQuery constructor",
)

// GetDriversQuery retrieves all driver accounts together with the deliveries
// assigned to each. Credentials are never part of the read model. Admin-only.
type GetDriversQuery struct {
	caller services.Caller

	guard guard.ConstructorGuard
}

// NewGetDriversQuery creates a query for the driver roster.
func NewGetDriversQuery(caller services.Caller) (GetDriversQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetDriversQuery{}, err
	}

	return GetDriversQuery{
		caller: caller,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}

// Caller returns the authenticated identity issuing the query.
func (q GetDriversQuery) Caller() services.Caller {
	return q.caller
}

// DriverDeliveryResponse represents one delivery owned by a driver in the
// roster read model.
type DriverDeliveryResponse struct {
	ID           kernel.UUID
	ReceiverName string
	Address      string
	Status       delivery.Status
	FailedReason *string
	CreatedAt    time.Time
}

// GetDriversQueryResponse represents one driver and their deliveries.
type GetDriversQueryResponse struct {
	ID         kernel.UUID
	Username   string
	Email      string
	Role       account.Role
	IsActive   bool
	LastLogin  *time.Time
	Deliveries []DriverDeliveryResponse
}
