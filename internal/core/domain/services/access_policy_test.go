package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func newCaller(t *testing.T, role account.Role) services.Caller {
	t.Helper()
	c, err := services.NewCaller(kernel.NewUUID(), role)
	require.NoError(t, err)
	return c
}

func deliveryAssignedTo(t *testing.T, driverID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), "John Doe", "123 Main Street", "+2348012345678", "", driverID)
	require.NoError(t, err)
	return d
}

func TestNewCaller(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c, err := services.NewCaller(kernel.NewUUID(), account.RoleDriver)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
	})

	t.Run("invalid_role", func(t *testing.T) {
		_, err := services.NewCaller(kernel.NewUUID(), account.RoleUnknown)

		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var c services.Caller

		require.ErrorIs(t, c.Validate(), services.ErrCallerIsNotConstructed)
	})
}

func TestAccessPolicy_AdminOnlyOperations(t *testing.T) {
	policy := services.NewAccessPolicy()
	adminOnly := []services.Operation{
		services.OperationCreateDelivery,
		services.OperationListDeliveries,
		services.OperationListDrivers,
		services.OperationViewDriver,
		services.OperationRemoveDriver,
	}

	for _, op := range adminOnly {
		t.Run(op.String(), func(t *testing.T) {
			require.NoError(t, policy.CanPerform(newCaller(t, account.RoleAdmin), op, nil))

			err := policy.CanPerform(newCaller(t, account.RoleDriver), op, nil)
			require.ErrorIs(t, err, errs.ErrAccessDenied)
		})
	}
}

func TestAccessPolicy_ViewDelivery(t *testing.T) {
	policy := services.NewAccessPolicy()

	t.Run("admin_may_view_any_delivery", func(t *testing.T) {
		target := deliveryAssignedTo(t, kernel.NewUUID())

		require.NoError(t, policy.CanPerform(
			newCaller(t, account.RoleAdmin), services.OperationViewDelivery, target))
	})

	t.Run("owning_driver_may_view", func(t *testing.T) {
		owner := newCaller(t, account.RoleDriver)
		target := deliveryAssignedTo(t, owner.ID())

		require.NoError(t, policy.CanPerform(owner, services.OperationViewDelivery, target))
	})

	t.Run("other_driver_is_denied", func(t *testing.T) {
		target := deliveryAssignedTo(t, kernel.NewUUID())

		err := policy.CanPerform(
			newCaller(t, account.RoleDriver), services.OperationViewDelivery, target)
		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("missing_target_is_rejected", func(t *testing.T) {
		err := policy.CanPerform(
			newCaller(t, account.RoleAdmin), services.OperationViewDelivery, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestAccessPolicy_OwnerOnlyMutations(t *testing.T) {
	policy := services.NewAccessPolicy()
	ownerOnly := []services.Operation{
		services.OperationDecideDelivery,
		services.OperationUpdateDeliveryStatus,
	}

	// Every role x ownership combination from the policy table.
	for _, op := range ownerOnly {
		t.Run(op.String(), func(t *testing.T) {
			t.Run("owning_driver_allowed", func(t *testing.T) {
				owner := newCaller(t, account.RoleDriver)
				target := deliveryAssignedTo(t, owner.ID())

				require.NoError(t, policy.CanPerform(owner, op, target))
			})

			t.Run("non_owner_driver_denied", func(t *testing.T) {
				target := deliveryAssignedTo(t, kernel.NewUUID())

				err := policy.CanPerform(newCaller(t, account.RoleDriver), op, target)
				require.ErrorIs(t, err, errs.ErrAccessDenied)
			})

			t.Run("admin_denied", func(t *testing.T) {
				admin := newCaller(t, account.RoleAdmin)
				target := deliveryAssignedTo(t, admin.ID())

				err := policy.CanPerform(admin, op, target)
				require.ErrorIs(t, err, errs.ErrAccessDenied)
			})

			t.Run("unassigned_delivery_denies_everyone", func(t *testing.T) {
				driver := newCaller(t, account.RoleDriver)
				target := deliveryAssignedTo(t, driver.ID())
				require.NoError(t, target.Reject())

				err := policy.CanPerform(driver, op, target)
				require.ErrorIs(t, err, errs.ErrAccessDenied)
			})
		})
	}
}

func TestAccessPolicy_DenialNamesRule(t *testing.T) {
	policy := services.NewAccessPolicy()

	err := policy.CanPerform(
		newCaller(t, account.RoleDriver), services.OperationCreateDelivery, nil)

	require.ErrorIs(t, err, errs.ErrAccessDenied)
	require.ErrorContains(t, err, "admin role required")
}

func TestAccessPolicy_UnknownOperation(t *testing.T) {
	policy := services.NewAccessPolicy()

	err := policy.CanPerform(
		newCaller(t, account.RoleAdmin), services.OperationUnknown, nil)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAccessPolicy_UnconstructedCaller(t *testing.T) {
	policy := services.NewAccessPolicy()

	var caller services.Caller
	err := policy.CanPerform(caller, services.OperationListDrivers, nil)

	require.ErrorIs(t, err, services.ErrCallerIsNotConstructed)
}
