package commands

import (
	"context"
)

// CleanupResetTokensCommandHandler clears password-reset tokens that were
// never used before their expiry. Keeping stale digests around would let an
// expired token still locate an account row, so the sweep removes them
// entirely.
type CleanupResetTokensCommandHandler struct {
	uowFactory AccountUoWFactory
}

// NewCleanupResetTokensCommandHandler creates a handler for the token sweep.
func NewCleanupResetTokensCommandHandler(uowFactory AccountUoWFactory) CleanupResetTokensCommandHandler {
	return CleanupResetTokensCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle clears every expired reset token in a single transaction and returns
// the number of accounts swept.
func (h *CleanupResetTokensCommandHandler) Handle(ctx context.Context, command CleanupResetTokensCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accounts := uow.AccountRepository()

	expired, err := accounts.GetAllWithExpiredResetTokens(ctx, command.Now())
	if err != nil {
		return 0, err
	}

	for _, acc := range expired {
		acc.ClearResetToken()
		if err = accounts.Update(ctx, acc); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(expired), nil
}
