// Package deliveryrepo provides data transfer objects and mapping functions for
// delivery persistence. Implements the repository pattern for the delivery
// domain aggregate, handling conversion between domain entities and database rows.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// driver_id is indexed for the per-driver listing and the active-delivery check;
// status is indexed for the dispatcher's filtered board.
type DeliveryDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ReceiverName string     `gorm:"type:varchar(255);not null"`
	Address      string     `gorm:"type:varchar(255);not null"`
	Phone        string     `gorm:"type:varchar(32);not null"`
	Description  *string    `gorm:"type:text"`
	Status       string     `gorm:"type:varchar(16);not null;index"`
	FailedReason *string    `gorm:"type:text"`
	DriverID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var description *string
	if d := aggregate.Description(); d != "" {
		description = &d
	}

	return DeliveryDTO{
		ID:           aggregate.ID().Bytes(),
		ReceiverName: aggregate.ReceiverName(),
		Address:      aggregate.Address(),
		Phone:        aggregate.Phone(),
		Description:  description,
		Status:       aggregate.Status().String(),
		FailedReason: aggregate.FailedReason(),
		DriverID:     driverID,
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
// RestoreDelivery re-validates all invariants, including the failedReason
// pairing, so corrupted rows are rejected at the boundary.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var description string
	if dto.Description != nil {
		description = *dto.Description
	}

	return delivery.RestoreDelivery(
		id,
		dto.ReceiverName,
		dto.Address,
		dto.Phone,
		description,
		status,
		driverID,
		dto.FailedReason,
	)
}
