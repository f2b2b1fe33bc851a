package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrResetPasswordCommandIsNotConstructed = errors.New(
	"ResetPasswordCommand must be created via NewResetPasswordCommand constructor",
)

// ErrResetTokenInvalid is returned when the presented reset token matches no
// account or has already been consumed.
var ErrResetTokenInvalid = errs.NewValueIsInvalidError("reset token is invalid or has expired")

// ResetPasswordCommand represents a request to complete a password reset
// using the token received by email.
type ResetPasswordCommand struct { //nolint:recvcheck //using for validation
	token    string
	password string

	guard guard.ConstructorGuard
}

// NewResetPasswordCommand creates a command to set a new password via reset token.
func NewResetPasswordCommand(token, password string) (ResetPasswordCommand, error) {
	cmd := ResetPasswordCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setToken(token),
		cmd.setPassword(password),
	); err != nil {
		return ResetPasswordCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResetPasswordCommand) Validate() error {
	return c.guard.Validate(ErrResetPasswordCommandIsNotConstructed)
}

// Token returns the plain reset token from the email link.
func (c ResetPasswordCommand) Token() string {
	return c.token
}

// Password returns the new plain password.
func (c ResetPasswordCommand) Password() string {
	return c.password
}

func (c *ResetPasswordCommand) setToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}
	c.token = token
	return nil
}

func (c *ResetPasswordCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	c.password = password
	return nil
}
