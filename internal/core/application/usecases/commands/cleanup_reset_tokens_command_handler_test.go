package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCleanupResetTokensCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	first := newTestAccount(t, "pat@acme.dev", account.RoleDriver)
	second := newTestAccount(t, "sam@acme.dev", account.RoleDriver)
	for _, acc := range []*account.Account{first, second} {
		_, digest, err := account.NewResetToken()
		require.NoError(t, err)
		acc.BeginPasswordReset(digest, now.Add(-time.Hour))
	}

	cmd, err := commands.NewCleanupResetTokensCommand(now)
	require.NoError(t, err)

	repo := new(MockAccountRepository)
	uow := new(MockAccountUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(repo).Once(),
		repo.On("GetAllWithExpiredResetTokens", mock.Anything, now).
			Return([]*account.Account{first, second}, nil).Once(),
		repo.On("Update", mock.Anything, first).Return(nil).Once(),
		repo.On("Update", mock.Anything, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAccountUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCleanupResetTokensCommandHandler(factory)
	swept, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, swept)
	assert.Nil(t, first.ResetTokenDigest())
	assert.Nil(t, second.ResetTokenDigest())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCleanupResetTokensCommandHandler_Handle_NothingExpired(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	cmd, err := commands.NewCleanupResetTokensCommand(now)
	require.NoError(t, err)

	repo := new(MockAccountRepository)
	uow := new(MockAccountUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(repo).Once(),
		repo.On("GetAllWithExpiredResetTokens", mock.Anything, now).
			Return([]*account.Account{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAccountUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCleanupResetTokensCommandHandler(factory)
	swept, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, swept)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewCleanupResetTokensCommand_ZeroTime(t *testing.T) {
	_, err := commands.NewCleanupResetTokensCommand(time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCleanupResetTokensCommand_NotConstructed(t *testing.T) {
	var cmd commands.CleanupResetTokensCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrCleanupResetTokensCommandIsNotConstructed)
}
