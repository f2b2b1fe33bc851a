package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangePasswordCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	acc := newTestAccount(t, "pat@acme.dev", account.RoleDriver)
	cmd, _ := commands.NewChangePasswordCommand(acc.ID(), testPlainPassword, "newpassword1")

	repo := new(MockAccountRepository)
	uow := new(MockAccountUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, acc.ID()).Return(acc, nil).Once(),
		repo.On("Update", mock.Anything, acc).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAccountUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangePasswordCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, acc.VerifyPassword("newpassword1"))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangePasswordCommandHandler_Handle_WrongCurrentPassword(t *testing.T) {
	ctx := t.Context()

	acc := newTestAccount(t, "pat@acme.dev", account.RoleDriver)
	cmd, _ := commands.NewChangePasswordCommand(acc.ID(), "wrongpassword", "newpassword1")

	repo := new(MockAccountRepository)
	uow := new(MockAccountUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, acc.ID()).Return(acc, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAccountUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangePasswordCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, account.ErrCurrentPasswordMismatch)
	require.NoError(t, acc.VerifyPassword(testPlainPassword))
}

func TestNewChangePasswordCommand_InvalidAccountID(t *testing.T) {
	_, err := commands.NewChangePasswordCommand(kernel.UUID{}, testPlainPassword, "newpassword1")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
