package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrForgotPasswordCommandIsNotConstructed = errors.New(
	"ForgotPasswordCommand must be created via NewForgotPasswordCommand constructor",
)

// ForgotPasswordCommand represents a request to start a password reset.
type ForgotPasswordCommand struct { //nolint:recvcheck //using for validation
	email string

	guard guard.ConstructorGuard
}

// NewForgotPasswordCommand creates a command to issue a reset token for the email.
func NewForgotPasswordCommand(email string) (ForgotPasswordCommand, error) {
	if email == "" {
		return ForgotPasswordCommand{}, errs.NewValueIsRequiredError("email")
	}

	return ForgotPasswordCommand{
		email: email,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ForgotPasswordCommand) Validate() error {
	return c.guard.Validate(ErrForgotPasswordCommandIsNotConstructed)
}

// Email returns the address of the account to reset.
func (c ForgotPasswordCommand) Email() string {
	return c.email
}
