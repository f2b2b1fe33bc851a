// Package ports defines repository and infrastructure interfaces for the core.
// These interfaces establish contracts between the domain layer and adapters,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for account aggregates.
type AccountRepository interface {
	// Add persists a new account aggregate to storage.
	// Fails with a ValueIsInvalidError when the email is already registered.
	Add(ctx context.Context, aggregate *account.Account) error

	// Update persists changes to an existing account aggregate.
	Update(ctx context.Context, aggregate *account.Account) error

	// Get retrieves an account aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when no account exists with the ID.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// GetByEmail retrieves an account aggregate by its unique email address.
	// Returns an ObjectNotFoundError when no account exists with the email.
	GetByEmail(ctx context.Context, email string) (*account.Account, error)

	// GetByResetTokenDigest retrieves the account holding the given pending
	// password-reset token digest. Returns an ObjectNotFoundError when no
	// account holds the digest.
	GetByResetTokenDigest(ctx context.Context, digest string) (*account.Account, error)

	// GetAllByRole retrieves all accounts with the given role.
	GetAllByRole(ctx context.Context, role account.Role) ([]*account.Account, error)

	// GetAllWithExpiredResetTokens retrieves accounts whose pending reset
	// token expired before now. Used by the cleanup job.
	GetAllWithExpiredResetTokens(ctx context.Context, now time.Time) ([]*account.Account, error)

	// Delete removes an account by its unique identifier.
	// Returns an ObjectNotFoundError when no account exists with the ID.
	Delete(ctx context.Context, id kernel.UUID) error
}
