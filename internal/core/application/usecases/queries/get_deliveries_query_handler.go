package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveriesQueryHandler retrieves the delivery list from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetDeliveriesQueryHandler struct {
	db     *gorm.DB
	policy *services.AccessPolicy
}

// NewGetDeliveriesQueryHandler creates a handler for delivery list queries.
func NewGetDeliveriesQueryHandler(db *gorm.DB, policy *services.AccessPolicy) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db, policy: policy}
}

// Handle executes the query to retrieve deliveries, newest first.
func (h GetDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesQuery,
) ([]GetDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanPerform(query.Caller(), services.OperationListDeliveries, nil); err != nil {
		return nil, err
	}

	sqlQuery := `
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
	`
	args := make([]any, 0, 1)
	if query.StatusFilter() != nil {
		sqlQuery += " WHERE status = ?"
		args = append(args, query.StatusFilter().String())
	}
	sqlQuery += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]GetDeliveriesQueryResponse, 0)
	for rows.Next() {
		response, scanErr := scanDeliveryRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		deliveries = append(deliveries, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}

// scanDeliveryRow maps one deliveries row onto the shared delivery read model.
// Column order must match the SELECT lists in this package.
func scanDeliveryRow(rows *sql.Rows) (GetDeliveriesQueryResponse, error) {
	var response GetDeliveriesQueryResponse
	var id uuid.UUID
	var description sql.NullString
	var status string
	var failedReason sql.NullString
	var driverID uuid.NullUUID
	var createdAt time.Time

	if err := rows.Scan(
		&id,
		&response.ReceiverName,
		&response.Address,
		&response.Phone,
		&description,
		&status,
		&failedReason,
		&driverID,
		&createdAt,
	); err != nil {
		return GetDeliveriesQueryResponse{}, err
	}

	deliveryID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetDeliveriesQueryResponse{}, err
	}
	response.ID = deliveryID

	parsedStatus, err := delivery.StatusFromString(status)
	if err != nil {
		return GetDeliveriesQueryResponse{}, err
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
			return GetDeliveriesQueryResponse{}, idErr
		}
		response.DriverID = &driver
	}
	response.CreatedAt = createdAt

	return response, nil
}
