package commands_test

import (
	"testing"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

const testPlainPassword = "s3cretpass"

func newTestAccount(t *testing.T, email string, role account.Role) *account.Account {
	t.Helper()
	password, err := account.NewPasswordFromPlain(testPlainPassword)
	require.NoError(t, err)
	acc, err := account.NewAccount(kernel.NewUUID(), "pat", email, password, role)
	require.NoError(t, err)
	return acc
}

func newTestDelivery(t *testing.T, driverID kernel.UUID) *delivery.Delivery {
	t.Helper()
	del, err := delivery.NewDelivery(
		kernel.NewUUID(), "Dana Receiver", "456 Oak Avenue", "+15550101", "leave at door", driverID,
	)
	require.NoError(t, err)
	return del
}

func newCaller(t *testing.T, id kernel.UUID, role account.Role) services.Caller {
	t.Helper()
	caller, err := services.NewCaller(id, role)
	require.NoError(t, err)
	return caller
}
