package account

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"dispatch/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

const (
	// PasswordMinLength is the minimum accepted plain password length.
	PasswordMinLength = 8
	// PasswordMaxLength caps plain password length; bcrypt ignores input
	// beyond 72 bytes, so longer inputs are rejected outright.
	PasswordMaxLength = 72

	resetTokenBytes = 32
)

// ErrPasswordIsNotConstructed is returned when validating a zero-value Password.
var ErrPasswordIsNotConstructed = errs.NewValueIsRequiredError(
	"password must be created via NewPasswordFromPlain or RestorePassword")

// Password is a bcrypt-hashed credential value object.
// The plain text is hashed at construction and never stored; the hash is
// exposed only for persistence and is never serialized outward.
//
// Hashing is an explicit constructor step rather than a save-time hook:
// an Account can only ever hold an already-hashed credential.
type Password struct {
	hash string
}

// NewPasswordFromPlain hashes a plain password into a Password value object.
// The plain text must be between PasswordMinLength and PasswordMaxLength bytes.
func NewPasswordFromPlain(plain string) (Password, error) {
	if len(plain) < PasswordMinLength || len(plain) > PasswordMaxLength {
		return Password{}, errs.NewValueIsOutOfRangeError(
			"password length", len(plain), PasswordMinLength, PasswordMaxLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return Password{}, errs.NewValueIsInvalidErrorWithCause("password", err)
	}

	return Password{hash: string(hash)}, nil
}

// RestorePassword reconstructs a Password from its stored bcrypt hash.
// Used when rebuilding accounts from persistence.
func RestorePassword(hash string) (Password, error) {
	if hash == "" {
		return Password{}, errs.NewValueIsRequiredError("password hash")
	}
	return Password{hash: hash}, nil
}

// Matches reports whether the plain text matches the stored hash.
func (p Password) Matches(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.hash), []byte(plain)) == nil
}

// Hash returns the bcrypt hash for persistence.
func (p Password) Hash() string {
	return p.hash
}

// Validate checks that the Password was properly constructed.
func (p Password) Validate() error {
	if p.hash == "" {
		return ErrPasswordIsNotConstructed
	}
	return nil
}

// NewResetToken generates a random password-reset token.
// Returns the plain token (sent to the user by email) and its SHA-256 hex
// digest (the only form that is persisted). Lookups hash the presented token
// with HashResetToken and match against the stored digest.
func NewResetToken() (plain string, digest string, err error) {
	raw := make([]byte, resetTokenBytes)
	if _, err = rand.Read(raw); err != nil {
		return "", "", err
	}

	plain = hex.EncodeToString(raw)
	return plain, HashResetToken(plain), nil
}

// HashResetToken returns the SHA-256 hex digest of a plain reset token.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
