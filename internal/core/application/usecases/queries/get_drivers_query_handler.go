package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriversQueryHandler retrieves the driver roster from the database.
// Loads drivers and their deliveries in two queries and joins them in memory,
// avoiding row duplication from a SQL join.
type GetDriversQueryHandler struct {
	db     *gorm.DB
	policy *services.AccessPolicy
}

// NewGetDriversQueryHandler creates a handler for driver roster queries.
func NewGetDriversQueryHandler(db *gorm.DB, policy *services.AccessPolicy) GetDriversQueryHandler {
	return GetDriversQueryHandler{db: db, policy: policy}
}

// Handle executes the query to retrieve all drivers with their deliveries.
func (h GetDriversQueryHandler) Handle(
	ctx context.Context,
	query GetDriversQuery,
) ([]GetDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanPerform(query.Caller(), services.OperationListDrivers, nil); err != nil {
		return nil, err
	}

	drivers, err := h.loadDrivers(ctx)
	if err != nil {
		return nil, err
	}

	if err = h.attachDeliveries(ctx, drivers); err != nil {
		return nil, err
	}

	result := make([]GetDriversQueryResponse, 0, len(drivers))
	for _, d := range drivers {
		result = append(result, *d)
	}

	return result, nil
}

// loadDrivers returns the roster ordered by username, keyed for delivery attachment.
func (h GetDriversQueryHandler) loadDrivers(ctx context.Context) ([]*GetDriversQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			username,
			email,
			is_active,
			last_login
		FROM accounts
		WHERE role = ?
		ORDER BY username
	`, account.RoleDriver.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]*GetDriversQueryResponse, 0)
	for rows.Next() {
		var driver GetDriversQueryResponse
		var id uuid.UUID
		var lastLogin sql.NullTime

		if err = rows.Scan(&id, &driver.Username, &driver.Email, &driver.IsActive, &lastLogin); err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		driver.ID = driverID
		driver.Role = account.RoleDriver
		if lastLogin.Valid {
			login := lastLogin.Time
			driver.LastLogin = &login
		}
		driver.Deliveries = make([]DriverDeliveryResponse, 0)

		drivers = append(drivers, &driver)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}

// attachDeliveries loads all assigned deliveries and groups them per driver.
func (h GetDriversQueryHandler) attachDeliveries(ctx context.Context, drivers []*GetDriversQueryResponse) error {
	if len(drivers) == 0 {
		return nil
	}

	byID := make(map[kernel.UUID]*GetDriversQueryResponse, len(drivers))
	for _, d := range drivers {
		byID[d.ID] = d
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			receiver_name,
			address,
			status,
			failed_reason,
			driver_id,
			created_at
		FROM deliveries
		WHERE driver_id IS NOT NULL
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item DriverDeliveryResponse
		var id uuid.UUID
		var status string
		var failedReason sql.NullString
		var driverID uuid.UUID
		var createdAt time.Time

		if err = rows.Scan(
			&id, &item.ReceiverName, &item.Address, &status, &failedReason, &driverID, &createdAt,
		); err != nil {
			return err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return idErr
		}
		item.ID = deliveryID

		parsedStatus, statusErr := delivery.StatusFromString(status)
		if statusErr != nil {
			return statusErr
		}
		item.Status = parsedStatus

		if failedReason.Valid {
			reason := failedReason.String
			item.FailedReason = &reason
		}
		item.CreatedAt = createdAt

		owner, idErr := kernel.UUIDFromBytes(driverID[:])
		if idErr != nil {
			return idErr
		}
		if driver, ok := byID[owner]; ok {
			driver.Deliveries = append(driver.Deliveries, item)
		}
	}

	return rows.Err()
}
