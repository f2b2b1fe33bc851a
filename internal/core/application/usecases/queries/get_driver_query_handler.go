package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverQueryHandler retrieves one driver and their deliveries.
type GetDriverQueryHandler struct {
	db     *gorm.DB
	policy *services.AccessPolicy
}

// NewGetDriverQueryHandler creates a handler for single-driver queries.
func NewGetDriverQueryHandler(db *gorm.DB, policy *services.AccessPolicy) GetDriverQueryHandler {
	return GetDriverQueryHandler{db: db, policy: policy}
}

// Handle executes the query to retrieve one driver.
// Returns an ObjectNotFoundError when no driver account has the ID; an admin
// account with the ID does not count as a driver here.
func (h GetDriverQueryHandler) Handle(
	ctx context.Context,
	query GetDriverQuery,
) (GetDriverQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriverQueryResponse{}, err
	}

	if err := h.policy.CanPerform(query.Caller(), services.OperationViewDriver, nil); err != nil {
		return GetDriverQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			username,
			email,
			is_active,
			last_login
		FROM accounts
		WHERE id = ? AND role = ?
	`, query.DriverID().Bytes(), account.RoleDriver.String()).Row()

	var driver GetDriverQueryResponse
	var id uuid.UUID
	var lastLogin sql.NullTime

	err := row.Scan(&id, &driver.Username, &driver.Email, &driver.IsActive, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDriverQueryResponse{}, errs.NewObjectNotFoundError("driverId", query.DriverID())
		}
		return GetDriverQueryResponse{}, err
	}

	driverID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetDriverQueryResponse{}, err
	}
	driver.ID = driverID
	driver.Role = account.RoleDriver
	if lastLogin.Valid {
		login := lastLogin.Time
		driver.LastLogin = &login
	}

	driver.Deliveries, err = h.loadDeliveries(ctx, driverID)
	if err != nil {
		return GetDriverQueryResponse{}, err
	}

	return driver, nil
}

func (h GetDriverQueryHandler) loadDeliveries(
	ctx context.Context, driverID kernel.UUID,
) ([]DriverDeliveryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			receiver_name,
			address,
			status,
			failed_reason,
			created_at
		FROM deliveries
		WHERE driver_id = ?
		ORDER BY created_at DESC
	`, driverID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]DriverDeliveryResponse, 0)
	for rows.Next() {
		var item DriverDeliveryResponse
		var id uuid.UUID
		var status string
		var failedReason sql.NullString
		var createdAt time.Time

		if err = rows.Scan(&id, &item.ReceiverName, &item.Address, &status, &failedReason, &createdAt); err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = deliveryID

		parsedStatus, statusErr := delivery.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}
		item.Status = parsedStatus

		if failedReason.Valid {
			reason := failedReason.String
			item.FailedReason = &reason
		}
		item.CreatedAt = createdAt

		deliveries = append(deliveries, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
