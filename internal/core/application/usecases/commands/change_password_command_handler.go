package commands

import (
	"context"

	"dispatch/internal/core/domain/model/account"
)

// ChangePasswordCommandHandler replaces the caller's password after verifying
// the current one. The account aggregate enforces the verification.
type ChangePasswordCommandHandler struct {
	uowFactory AccountUoWFactory
}

// NewChangePasswordCommandHandler creates a handler for password changes.
func NewChangePasswordCommandHandler(uowFactory AccountUoWFactory) ChangePasswordCommandHandler {
	return ChangePasswordCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the password change command.
// A mismatch on the current password surfaces as account.ErrCurrentPasswordMismatch.
func (h *ChangePasswordCommandHandler) Handle(ctx context.Context, cmd ChangePasswordCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	next, err := account.NewPasswordFromPlain(cmd.NewPassword())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()

	acc, err := accountRepo.Get(ctx, cmd.AccountID())
	if err != nil {
		return err
	}

	if err = acc.ChangePassword(cmd.CurrentPassword(), next); err != nil {
		return err
	}

	if err = accountRepo.Update(ctx, acc); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
