package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RegisterAccountResult carries the created account together with a signed
// token so the client is authenticated immediately after signup.
type RegisterAccountResult struct {
	Account *account.Account
	Token   string
}

// RegisterAccountCommandHandler handles the business logic for account signup.
// Hashes the password, enforces email uniqueness and issues a bearer token.
//
// Example:
//
//	handler := NewRegisterAccountCommandHandler(uowFactory, tokens)
//	cmd, _ := NewRegisterAccountCommand("pat", "pat@acme.dev", "s3cretpass", "s3cretpass", "driver")
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("signup failed: %w", err)
//	}
//	// result.Token authenticates subsequent requests
type RegisterAccountCommandHandler struct {
	uowFactory AccountUoWFactory
	tokens     ports.TokenProvider
}

// NewRegisterAccountCommandHandler creates a handler for account signup.
func NewRegisterAccountCommandHandler(
	uowFactory AccountUoWFactory, tokens ports.TokenProvider,
) RegisterAccountCommandHandler {
	return RegisterAccountCommandHandler{
		uowFactory: uowFactory,
		tokens:     tokens,
	}
}

// Handle processes the signup command.
// Rejects duplicate emails before insert; the unique index on email is the
// backstop for concurrent signups racing past this check.
func (h *RegisterAccountCommandHandler) Handle(
	ctx context.Context, cmd RegisterAccountCommand,
) (RegisterAccountResult, error) {
	if err := cmd.Validate(); err != nil {
		return RegisterAccountResult{}, err
	}

	password, err := account.NewPasswordFromPlain(cmd.Password())
	if err != nil {
		return RegisterAccountResult{}, err
	}

	newAccount, err := account.NewAccount(kernel.NewUUID(), cmd.Username(), cmd.Email(), password, cmd.Role())
	if err != nil {
		return RegisterAccountResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return RegisterAccountResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()

	_, err = accountRepo.GetByEmail(ctx, cmd.Email())
	if err == nil {
		return RegisterAccountResult{}, ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return RegisterAccountResult{}, err
	}

	if err = accountRepo.Add(ctx, newAccount); err != nil {
		return RegisterAccountResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RegisterAccountResult{}, err
	}

	token, err := h.tokens.Sign(ports.AuthClaims{
		SubjectID: newAccount.ID(),
		Email:     newAccount.Email(),
		Role:      newAccount.Role(),
	})
	if err != nil {
		return RegisterAccountResult{}, err
	}

	return RegisterAccountResult{Account: newAccount, Token: token}, nil
}
