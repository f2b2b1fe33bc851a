package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	// Clearing the driver on rejection and resetting the status persist
	// as part of the same row update.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when no delivery exists with the ID.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetAllByDriver retrieves all deliveries assigned to the given driver.
	GetAllByDriver(ctx context.Context, driverID kernel.UUID) ([]*delivery.Delivery, error)

	// HasActiveByDriver reports whether the driver has deliveries in an
	// active status (Pending, Picked-Up or En-Route). Driver removal is
	// blocked while this holds.
	HasActiveByDriver(ctx context.Context, driverID kernel.UUID) (bool, error)
}
