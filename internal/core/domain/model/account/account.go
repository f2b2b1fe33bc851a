package account

import (
	"errors"
	"net/mail"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const (
	// UsernameMinLength is the minimum accepted username length.
	UsernameMinLength = 3
	// UsernameMaxLength is the maximum accepted username length.
	UsernameMaxLength = 30
)

var (
	// ErrAccountIsNotConstructed is returned when an Account instance was not created
	// through the NewAccount or RestoreAccount factory methods.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount constructor")

	// ErrCurrentPasswordMismatch is returned by ChangePassword when the supplied
	// current password does not match the stored credential.
	ErrCurrentPasswordMismatch = errors.New("current password is incorrect")

	// ErrResetTokenExpired is returned when a password reset is attempted with a
	// token whose validity window has passed.
	ErrResetTokenExpired = errors.New("reset token is invalid or has expired")
)

// Account represents a user of the system. It is the aggregate root for
// identity: credentials, role, activity flag and the password-reset token all
// live here and are mutated only through validated methods.
//
// Account follows these invariants:
//   - Must have a valid unique identifier
//   - Username is between UsernameMinLength and UsernameMaxLength characters
//   - Email is a parseable address and unique across the system (uniqueness is
//     enforced by the repository)
//   - The credential is always a hashed Password, never plain text
//   - Role is a valid closed-enumeration value
//   - Can only be created through NewAccount or RestoreAccount
type Account struct {
	id       kernel.UUID
	username string
	email    string
	password Password
	role     Role

	isActive bool

	// resetTokenDigest holds the SHA-256 digest of the outstanding
	// password-reset token, nil when no reset is pending.
	resetTokenDigest  *string
	resetTokenExpires *time.Time

	lastLogin *time.Time

	isConstructed bool
}

// NewAccount creates a new active Account with validation. This is the only way
// (besides RestoreAccount) to create a valid Account.
//
// The password must already be a constructed Password value object; hashing a
// plain password is the caller's explicit step via NewPasswordFromPlain.
func NewAccount(id kernel.UUID, username, email string, password Password, role Role) (*Account, error) {
	account := &Account{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		account.setID(id),
		account.setUsername(username),
		account.setEmail(email),
		account.setPassword(password),
		account.setRole(role),
	); err != nil {
		return nil, err
	}

	return account, nil
}

// RestoreAccount reconstructs an Account from persistence.
// All invariants are re-validated so corrupted rows cannot produce an
// invalid aggregate.
func RestoreAccount(
	id kernel.UUID,
	username, email string,
	password Password,
	role Role,
	isActive bool,
	resetTokenDigest *string,
	resetTokenExpires *time.Time,
	lastLogin *time.Time,
) (*Account, error) {
	account, err := NewAccount(id, username, email, password, role)
	if err != nil {
		return nil, err
	}

	account.isActive = isActive
	account.resetTokenDigest = resetTokenDigest
	account.resetTokenExpires = resetTokenExpires
	account.lastLogin = lastLogin
	return account, nil
}

// Validate ensures the Account instance was properly constructed.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

// IsEqual compares two accounts by their unique identifiers.
func (a *Account) IsEqual(other *Account) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Username returns the account's display name.
func (a *Account) Username() string {
	return a.username
}

// Email returns the account's unique email address.
func (a *Account) Email() string {
	return a.email
}

// Password returns the hashed credential value object.
// The hash inside is for persistence and comparison only; it is never
// exposed through any read path.
func (a *Account) Password() Password {
	return a.password
}

// Role returns the account's role.
func (a *Account) Role() Role {
	return a.role
}

// IsActive reports whether the account may authenticate.
func (a *Account) IsActive() bool {
	return a.isActive
}

// LastLogin returns the timestamp of the most recent login, nil if never.
func (a *Account) LastLogin() *time.Time {
	return a.lastLogin
}

// ResetTokenDigest returns the digest of the outstanding reset token, nil when
// no reset is pending.
func (a *Account) ResetTokenDigest() *string {
	return a.resetTokenDigest
}

// ResetTokenExpires returns the expiry of the outstanding reset token.
func (a *Account) ResetTokenExpires() *time.Time {
	return a.resetTokenExpires
}

// RecordLogin stores the time of a successful authentication.
func (a *Account) RecordLogin(now time.Time) {
	a.lastLogin = &now
}

// Deactivate disables the account. Deactivated accounts fail authentication
// until reactivated directly in storage.
func (a *Account) Deactivate() {
	a.isActive = false
}

// VerifyPassword checks a plain password against the stored credential.
// Returns ErrCurrentPasswordMismatch on failure.
func (a *Account) VerifyPassword(plain string) error {
	if !a.password.Matches(plain) {
		return ErrCurrentPasswordMismatch
	}
	return nil
}

// ChangePassword replaces the credential after verifying the current one.
func (a *Account) ChangePassword(currentPlain string, next Password) error {
	if err := a.VerifyPassword(currentPlain); err != nil {
		return err
	}
	return a.setPassword(next)
}

// BeginPasswordReset records a pending reset token.
// The digest is produced by NewResetToken; the validity window ends at expires.
func (a *Account) BeginPasswordReset(digest string, expires time.Time) {
	a.resetTokenDigest = &digest
	a.resetTokenExpires = &expires
}

// CompletePasswordReset sets a new credential if the pending token is still
// valid at now, and clears the token. Returns ErrResetTokenExpired when no
// reset is pending or the window has passed.
func (a *Account) CompletePasswordReset(next Password, now time.Time) error {
	if a.resetTokenDigest == nil || a.resetTokenExpires == nil || now.After(*a.resetTokenExpires) {
		return ErrResetTokenExpired
	}

	if err := a.setPassword(next); err != nil {
		return err
	}

	a.ClearResetToken()
	return nil
}

// ClearResetToken drops any pending reset token.
// Used both on successful reset and as a compensating step when sending the
// reset email fails after the token was persisted.
func (a *Account) ClearResetToken() {
	a.resetTokenDigest = nil
	a.resetTokenExpires = nil
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setUsername(username string) error {
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		return errs.NewValueIsOutOfRangeError("username", len(username), UsernameMinLength, UsernameMaxLength)
	}
	a.username = username
	return nil
}

func (a *Account) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	a.email = email
	return nil
}

func (a *Account) setPassword(password Password) error {
	if err := password.Validate(); err != nil {
		return err
	}
	a.password = password
	return nil
}

func (a *Account) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
