// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrGetDeliveriesQueryIsNotConstructed = errors.New(
	"GetDeliveriesQuery must be created via NewGetDeliveriesQuery constructor",
)

// GetDeliveriesQuery retrieves all deliveries, optionally narrowed to a single
// status. Admin-only: this is the dispatcher's overview of the whole board.
//
// Example:
//
//	query, _ := NewGetDeliveriesQuery(caller, "Pending")
//	handler := NewGetDeliveriesQueryHandler(db, policy)
//
//	deliveries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve deliveries: %w", err)
//	}
type GetDeliveriesQuery struct {
	caller       services.Caller
	statusFilter *delivery.Status

	guard guard.ConstructorGuard
}

// NewGetDeliveriesQuery creates a query for the delivery list.
// statusFilter may be empty; a non-empty value must be a valid status literal.
func NewGetDeliveriesQuery(caller services.Caller, statusFilter string) (GetDeliveriesQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetDeliveriesQuery{}, err
	}

	query := GetDeliveriesQuery{
		caller: caller,
		guard:  guard.NewConstructorGuard(),
	}

	if statusFilter != "" {
		status, err := delivery.StatusFromString(statusFilter)
		if err != nil {
			return GetDeliveriesQuery{}, err
		}
		query.statusFilter = &status
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

// Caller returns the authenticated identity issuing the query.
func (q GetDeliveriesQuery) Caller() services.Caller {
	return q.caller
}

// StatusFilter returns the optional status the list is narrowed to.
func (q GetDeliveriesQuery) StatusFilter() *delivery.Status {
	return q.statusFilter
}

// GetDeliveriesQueryResponse represents one delivery in the list read model.
type GetDeliveriesQueryResponse struct {
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
