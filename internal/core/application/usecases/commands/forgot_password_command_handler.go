package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// ForgotPasswordCommandHandler starts a password reset.
// Persists a hashed reset token with an expiry, then emails the plain token.
// If sending fails the token is rolled back in a compensating transaction so
// a token the user never received cannot linger in the database.
type ForgotPasswordCommandHandler struct {
	uowFactory AccountUoWFactory
	notifier   ports.Notifier
	tokenTTL   time.Duration
}

// NewForgotPasswordCommandHandler creates a handler for password reset requests.
// tokenTTL bounds how long an issued reset token stays usable.
func NewForgotPasswordCommandHandler(
	uowFactory AccountUoWFactory, notifier ports.Notifier, tokenTTL time.Duration,
) ForgotPasswordCommandHandler {
	return ForgotPasswordCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		tokenTTL:   tokenTTL,
	}
}

// Handle processes the reset request.
// Only the sha256 digest of the token is stored; the plain token exists solely
// in the email. Repeated requests overwrite the previous token.
func (h *ForgotPasswordCommandHandler) Handle(ctx context.Context, cmd ForgotPasswordCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	plainToken, digest, err := account.NewResetToken()
	if err != nil {
		return err
	}

	accountID, err := h.storeToken(ctx, cmd.Email(), digest)
	if err != nil {
		return err
	}

	if err = h.notifier.SendPasswordReset(ctx, cmd.Email(), plainToken); err != nil {
		if clearErr := h.clearToken(ctx, accountID); clearErr != nil {
			return fmt.Errorf("clearing reset token after send failure: %w", clearErr)
		}
		return fmt.Errorf("sending password reset email: %w", err)
	}

	return nil
}

func (h *ForgotPasswordCommandHandler) storeToken(
	ctx context.Context, email, digest string,
) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()

	acc, err := accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return kernel.UUID{}, err
	}

	acc.BeginPasswordReset(digest, time.Now().UTC().Add(h.tokenTTL))

	if err = accountRepo.Update(ctx, acc); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return acc.ID(), nil
}

func (h *ForgotPasswordCommandHandler) clearToken(ctx context.Context, accountID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()

	acc, err := accountRepo.Get(ctx, accountID)
	if err != nil {
		return err
	}

	acc.ClearResetToken()

	if err = accountRepo.Update(ctx, acc); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
