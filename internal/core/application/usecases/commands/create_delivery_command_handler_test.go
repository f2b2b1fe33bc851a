package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	driver := newTestAccount(t, "driver@acme.dev", account.RoleDriver)
	admin := newCaller(t, kernel.NewUUID(), account.RoleAdmin)
	cmd, _ := commands.NewCreateDeliveryCommand(
		admin, "Dana Receiver", "456 Oak Avenue", "+15550101", "leave at door", driver.ID(),
	)

	accountRepo := new(MockAccountRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", mock.Anything, driver.ID()).Return(driver, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory, services.NewAccessPolicy())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, result.Delivery)
	assert.Equal(t, delivery.StatusPending, result.Delivery.Status())
	require.NotNil(t, result.Delivery.DriverID())
	assert.True(t, result.Delivery.DriverID().IsEqual(driver.ID()))
	accountRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_DriverDenied(t *testing.T) {
	ctx := t.Context()

	driverCaller := newCaller(t, kernel.NewUUID(), account.RoleDriver)
	cmd, _ := commands.NewCreateDeliveryCommand(
		driverCaller, "Dana Receiver", "456 Oak Avenue", "+15550101", "", kernel.NewUUID(),
	)

	factory := new(MockUoWFactory)

	h := commands.NewCreateDeliveryCommandHandler(factory, services.NewAccessPolicy())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrAccessDenied)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateDeliveryCommandHandler_Handle_UnknownDriver(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	admin := newCaller(t, kernel.NewUUID(), account.RoleAdmin)
	cmd, _ := commands.NewCreateDeliveryCommand(
		admin, "Dana Receiver", "456 Oak Avenue", "+15550101", "", driverID,
	)

	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", mock.Anything, driverID).
			Return(nil, errs.NewObjectNotFoundError("accountId", driverID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory, services.NewAccessPolicy())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewCreateDeliveryCommand_MissingFields(t *testing.T) {
	admin := newCaller(t, kernel.NewUUID(), account.RoleAdmin)
	_, err := commands.NewCreateDeliveryCommand(admin, "", "", "", "", kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
