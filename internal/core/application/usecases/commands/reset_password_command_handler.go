package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ResetPasswordResult carries the account and a fresh bearer token issued
// after a successful reset.
type ResetPasswordResult struct {
	Account *account.Account
	Token   string
}

// ResetPasswordCommandHandler completes a password reset.
// Looks the account up by the token digest, replaces the password and clears
// the token so it cannot be replayed.
type ResetPasswordCommandHandler struct {
	uowFactory AccountUoWFactory
	tokens     ports.TokenProvider
}

// NewResetPasswordCommandHandler creates a handler for completing password resets.
func NewResetPasswordCommandHandler(
	uowFactory AccountUoWFactory, tokens ports.TokenProvider,
) ResetPasswordCommandHandler {
	return ResetPasswordCommandHandler{
		uowFactory: uowFactory,
		tokens:     tokens,
	}
}

// Handle processes the reset completion command.
// Unknown and expired tokens both surface as ErrResetTokenInvalid.
func (h *ResetPasswordCommandHandler) Handle(
	ctx context.Context, cmd ResetPasswordCommand,
) (ResetPasswordResult, error) {
	if err := cmd.Validate(); err != nil {
		return ResetPasswordResult{}, err
	}

	password, err := account.NewPasswordFromPlain(cmd.Password())
	if err != nil {
		return ResetPasswordResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ResetPasswordResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()

	acc, err := accountRepo.GetByResetTokenDigest(ctx, account.HashResetToken(cmd.Token()))
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ResetPasswordResult{}, ErrResetTokenInvalid
		}
		return ResetPasswordResult{}, err
	}

	if err = acc.CompletePasswordReset(password, time.Now().UTC()); err != nil {
		if errors.Is(err, account.ErrResetTokenExpired) {
			return ResetPasswordResult{}, ErrResetTokenInvalid
		}
		return ResetPasswordResult{}, err
	}

	if err = accountRepo.Update(ctx, acc); err != nil {
		return ResetPasswordResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ResetPasswordResult{}, err
	}

	token, err := h.tokens.Sign(ports.AuthClaims{
		SubjectID: acc.ID(),
		Email:     acc.Email(),
		Role:      acc.Role(),
	})
	if err != nil {
		return ResetPasswordResult{}, err
	}

	return ResetPasswordResult{Account: acc, Token: token}, nil
}
