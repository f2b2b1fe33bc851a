package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// LoginResult carries the authenticated account and its signed bearer token.
type LoginResult struct {
	Account *account.Account
	Token   string
}

// LoginCommandHandler handles the business logic for authentication.
// Verifies credentials, rejects deactivated accounts and records the login
// timestamp before issuing a token.
type LoginCommandHandler struct {
	uowFactory AccountUoWFactory
	tokens     ports.TokenProvider
}

// NewLoginCommandHandler creates a handler for login operations.
func NewLoginCommandHandler(uowFactory AccountUoWFactory, tokens ports.TokenProvider) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		tokens:     tokens,
	}
}

// Handle processes the login command.
// Unknown emails and wrong passwords both surface as ErrInvalidCredentials
// so a caller cannot probe which emails are registered.
func (h *LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LoginResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()

	acc, err := accountRepo.GetByEmail(ctx, cmd.Email())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err = acc.VerifyPassword(cmd.Password()); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if !acc.IsActive() {
		return LoginResult{}, errs.NewAuthenticationError("account is deactivated")
	}

	acc.RecordLogin(time.Now().UTC())

	if err = accountRepo.Update(ctx, acc); err != nil {
		return LoginResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return LoginResult{}, err
	}

	token, err := h.tokens.Sign(ports.AuthClaims{
		SubjectID: acc.ID(),
		Email:     acc.Email(),
		Role:      acc.Role(),
	})
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Account: acc, Token: token}, nil
}
