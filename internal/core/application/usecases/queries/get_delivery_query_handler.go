package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryQueryHandler retrieves a single delivery from the database.
// Ownership is checked against the restored aggregate so the read path applies
// exactly the same access rules as the write path.
type GetDeliveryQueryHandler struct {
	db     *gorm.DB
	policy *services.AccessPolicy
}

// NewGetDeliveryQueryHandler creates a handler for single-delivery queries.
func NewGetDeliveryQueryHandler(db *gorm.DB, policy *services.AccessPolicy) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db, policy: policy}
}

// Handle executes the query to retrieve one delivery.
// Returns an ObjectNotFoundError when the delivery does not exist.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			receiver_name,
			address,
			phone,
			description,
			status,
			failed_reason,
			driver_id,
			created_at
		FROM deliveries
		WHERE id = ?
	`, query.DeliveryID().Bytes()).Row()

	var response GetDeliveryQueryResponse
	var id uuid.UUID
	var description sql.NullString
	var status string
	var failedReason sql.NullString
	var driverID uuid.NullUUID

	err := row.Scan(
		&id,
		&response.ReceiverName,
		&response.Address,
		&response.Phone,
		&description,
		&status,
		&failedReason,
		&driverID,
		&response.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDeliveryQueryResponse{}, errs.NewObjectNotFoundError("deliveryId", query.DeliveryID())
		}
		return GetDeliveryQueryResponse{}, err
	}

	deliveryID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	response.ID = deliveryID

	parsedStatus, err := delivery.StatusFromString(status)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	response.Status = parsedStatus

	if description.Valid {
		response.Description = description.String
	}
	if failedReason.Valid {
		reason := failedReason.String
		response.FailedReason = &reason
	}
	if driverID.Valid {
		driver, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return GetDeliveryQueryResponse{}, idErr
		}
		response.DriverID = &driver
	}

	restored, err := delivery.RestoreDelivery(
		response.ID,
		response.ReceiverName,
		response.Address,
		response.Phone,
		response.Description,
		response.Status,
		response.DriverID,
		response.FailedReason,
	)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	if err = h.policy.CanPerform(query.Caller(), services.OperationViewDelivery, restored); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	return response, nil
}
