package account_test

import (
	"testing"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		role, err := account.RoleFromString("admin")

		require.NoError(t, err)
		assert.Equal(t, account.RoleAdmin, role)
	})

	t.Run("driver", func(t *testing.T) {
		role, err := account.RoleFromString("driver")

		require.NoError(t, err)
		assert.Equal(t, account.RoleDriver, role)
	})

	t.Run("unknown_string", func(t *testing.T) {
		_, err := account.RoleFromString("customer")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRole_Validate(t *testing.T) {
	require.NoError(t, account.RoleAdmin.Validate())
	require.NoError(t, account.RoleDriver.Validate())
	require.Error(t, account.RoleUnknown.Validate())
	require.Error(t, account.Role(42).Validate())
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "admin", account.RoleAdmin.String())
	assert.Equal(t, "driver", account.RoleDriver.String())
	assert.Equal(t, "unknown", account.RoleUnknown.String())
	assert.Equal(t, "unknown", account.Role(42).String())
}

func TestRole_Predicates(t *testing.T) {
	assert.True(t, account.RoleAdmin.IsAdmin())
	assert.False(t, account.RoleAdmin.IsDriver())
	assert.True(t, account.RoleDriver.IsDriver())
	assert.False(t, account.RoleDriver.IsAdmin())
}
