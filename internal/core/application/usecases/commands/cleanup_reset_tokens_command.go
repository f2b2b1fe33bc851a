package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCleanupResetTokensCommandIsNotConstructed = errors.New(
	"CleanupResetTokensCommand must be created via NewCleanupResetTokensCommand constructor",
)

// CleanupResetTokensCommand triggers a sweep of password-reset tokens whose
// expiry passed before the given instant.
//
//nolint:recvcheck //using for validation
type CleanupResetTokensCommand struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewCleanupResetTokensCommand creates a command sweeping tokens expired
// before now.
func NewCleanupResetTokensCommand(now time.Time) (CleanupResetTokensCommand, error) {
	var cmd CleanupResetTokensCommand
	if err := cmd.setNow(now); err != nil {
		return CleanupResetTokensCommand{}, err
	}

	cmd.guard = guard.NewConstructorGuard()
	return cmd, nil
}

func (c *CleanupResetTokensCommand) setNow(now time.Time) error {
	if now.IsZero() {
		return errs.NewValueIsRequiredError("now")
	}
	c.now = now
	return nil
}

// Now returns the instant tokens are compared against.
func (c CleanupResetTokensCommand) Now() time.Time {
	return c.now
}

// Validate ensures the command was created through the constructor.
func (c *CleanupResetTokensCommand) Validate() error {
	return c.guard.Validate(
		ErrCleanupResetTokensCommandIsNotConstructed,
	)
}
