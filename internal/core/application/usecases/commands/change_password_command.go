package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrChangePasswordCommandIsNotConstructed = errors.New(
	"ChangePasswordCommand must be created via NewChangePasswordCommand constructor",
)

// ChangePasswordCommand represents an authenticated request to replace the
// caller's own password.
type ChangePasswordCommand struct { //nolint:recvcheck //using for validation
	accountID       kernel.UUID
	currentPassword string
	newPassword     string

	guard guard.ConstructorGuard
}

// NewChangePasswordCommand creates a command to change the password of accountID.
func NewChangePasswordCommand(accountID kernel.UUID, currentPassword, newPassword string) (ChangePasswordCommand, error) {
	cmd := ChangePasswordCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAccountID(accountID),
		cmd.setCurrentPassword(currentPassword),
		cmd.setNewPassword(newPassword),
	); err != nil {
		return ChangePasswordCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangePasswordCommand) Validate() error {
	return c.guard.Validate(ErrChangePasswordCommandIsNotConstructed)
}

// AccountID returns the identifier of the caller's account.
func (c ChangePasswordCommand) AccountID() kernel.UUID {
	return c.accountID
}

// CurrentPassword returns the plain password to verify before the change.
func (c ChangePasswordCommand) CurrentPassword() string {
	return c.currentPassword
}

// NewPassword returns the plain replacement password.
func (c ChangePasswordCommand) NewPassword() string {
	return c.newPassword
}

func (c *ChangePasswordCommand) setAccountID(accountID kernel.UUID) error {
	if err := accountID.Validate(); err != nil {
		return err
	}
	c.accountID = accountID
	return nil
}

func (c *ChangePasswordCommand) setCurrentPassword(currentPassword string) error {
	if currentPassword == "" {
		return errs.NewValueIsRequiredError("currentPassword")
	}
	c.currentPassword = currentPassword
	return nil
}

func (c *ChangePasswordCommand) setNewPassword(newPassword string) error {
	if newPassword == "" {
		return errs.NewValueIsRequiredError("newPassword")
	}
	c.newPassword = newPassword
	return nil
}
