package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRegisterAccountCommandIsNotConstructed = errors.New(
		"RegisterAccountCommand must be created via NewRegisterAccountCommand constructor",
	)

	// ErrPasswordsDoNotMatch is returned when password and confirmPassword differ.
	ErrPasswordsDoNotMatch = errs.NewValueIsInvalidError("confirmPassword does not match password")

	// ErrEmailAlreadyRegistered is returned when the email is taken by another account.
	ErrEmailAlreadyRegistered = errs.NewValueIsInvalidError("email is already registered")
)

// RegisterAccountCommand represents a request to create a new account.
// Role defaults to driver when the request omits it.
type RegisterAccountCommand struct { //nolint:recvcheck //using for validation
	username        string
	email           string
	password        string
	confirmPassword string
	role            account.Role

	guard guard.ConstructorGuard
}

// NewRegisterAccountCommand creates a command to register a new account.
// Validates that the mandatory fields are present, the two password fields
// match, and the role literal (if any) is valid. An empty role defaults to
// driver, matching self-service driver signup.
func NewRegisterAccountCommand(username, email, password, confirmPassword, role string) (RegisterAccountCommand, error) {
	cmd := RegisterAccountCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUsername(username),
		cmd.setEmail(email),
		cmd.setPasswords(password, confirmPassword),
		cmd.setRole(role),
	); err != nil {
		return RegisterAccountCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterAccountCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAccountCommandIsNotConstructed)
}

// Username returns the requested display name.
func (c RegisterAccountCommand) Username() string {
	return c.username
}

// Email returns the requested unique email address.
func (c RegisterAccountCommand) Email() string {
	return c.email
}

// Password returns the plain password. It is hashed by the handler before
// the account is constructed and never persisted in this form.
func (c RegisterAccountCommand) Password() string {
	return c.password
}

// Role returns the requested role.
func (c RegisterAccountCommand) Role() account.Role {
	return c.role
}

func (c *RegisterAccountCommand) setUsername(username string) error {
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	c.username = username
	return nil
}

func (c *RegisterAccountCommand) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	c.email = email
	return nil
}

func (c *RegisterAccountCommand) setPasswords(password, confirmPassword string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	if password != confirmPassword {
		return ErrPasswordsDoNotMatch
	}
	c.password = password
	return nil
}

func (c *RegisterAccountCommand) setRole(role string) error {
	if role == "" {
		c.role = account.RoleDriver
		return nil
	}

	parsed, err := account.RoleFromString(role)
	if err != nil {
		return err
	}
	c.role = parsed
	return nil
}
