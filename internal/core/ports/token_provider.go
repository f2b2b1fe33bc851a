package ports

import (
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
)

// AuthClaims is the identity payload carried inside a bearer token.
type AuthClaims struct {
	SubjectID kernel.UUID
	Email     string
	Role      account.Role
}

// TokenProvider signs and verifies bearer tokens for authenticated requests.
type TokenProvider interface {
	// Sign produces a signed, time-limited token carrying the claims.
	Sign(claims AuthClaims) (string, error)

	// Verify checks the token's signature and expiry and returns its claims.
	// Fails with an AuthenticationError when the token is invalid or expired.
	Verify(token string) (AuthClaims, error)
}
