package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverQueryIsNotConstructed = errors.New(
	"GetDriverQuery must be created via NewGetDriverQuery constructor",
)

// GetDriverQuery retrieves one driver account with their deliveries. Admin-only.
type GetDriverQuery struct {
	caller   services.Caller
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverQuery creates a query for one driver.
func NewGetDriverQuery(caller services.Caller, driverID kernel.UUID) (GetDriverQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetDriverQuery{}, err
	}
	if err := driverID.Validate(); err != nil {
		return GetDriverQuery{}, errs.NewValueIsRequiredError("driverId")
	}

	return GetDriverQuery{
		caller:   caller,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverQueryIsNotConstructed)
}

// Caller returns the authenticated identity issuing the query.
func (q GetDriverQuery) Caller() services.Caller {
	return q.caller
}

// DriverID returns the driver to fetch.
func (q GetDriverQuery) DriverID() kernel.UUID {
	return q.driverID
}

// GetDriverQueryResponse represents the single-driver read model with the
// driver's deliveries attached.
type GetDriverQueryResponse struct {
	ID         kernel.UUID
	Username   string
	Email      string
	Role       account.Role
	IsActive   bool
	LastLogin  *time.Time
	Deliveries []DriverDeliveryResponse
}
