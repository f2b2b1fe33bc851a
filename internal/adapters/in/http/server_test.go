package http

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryData(t *testing.T) {
	driverID := kernel.NewUUID()
	del, err := delivery.NewDelivery(
		kernel.NewUUID(), "Dana Receiver", "456 Oak Avenue", "+15550101", "leave at door", driverID,
	)
	require.NoError(t, err)

	data := deliveryData(del)

	assert.Equal(t, del.ID().String(), data.ID)
	assert.Equal(t, "Dana Receiver", data.ReceiverName)
	assert.Equal(t, "Pending", data.Status)
	require.NotNil(t, data.DriverID)
	assert.Equal(t, driverID.String(), *data.DriverID)
	assert.Nil(t, data.FailedReason)

	// Rejection clears the assignment and the wire shape follows.
	require.NoError(t, del.Reject())
	data = deliveryData(del)
	assert.Nil(t, data.DriverID)
}

func TestSingleDriverData(t *testing.T) {
	now := time.Now().UTC()
	driver := queries.GetDriverQueryResponse{
		ID:        kernel.NewUUID(),
		Username:  "pat",
		Email:     "pat@acme.dev",
		Role:      account.RoleDriver,
		IsActive:  true,
		LastLogin: &now,
		Deliveries: []queries.DriverDeliveryResponse{{
			ID:           kernel.NewUUID(),
			ReceiverName: "Dana Receiver",
			Address:      "456 Oak Avenue",
			Status:       delivery.StatusDelivered,
			CreatedAt:    now,
		}},
	}

	data := singleDriverData(driver)

	assert.Equal(t, driver.ID.String(), data.ID)
	assert.Equal(t, "pat", data.Username)
	assert.Equal(t, "driver", data.Role)
	require.NotNil(t, data.LastLogin)
	require.Len(t, data.Deliveries, 1)
	assert.Equal(t, driver.Deliveries[0].ID.String(), data.Deliveries[0].ID)
	assert.Equal(t, "Delivered", data.Deliveries[0].Status)
}
