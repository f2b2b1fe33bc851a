// Package jwtauth implements the TokenProvider port with HS256-signed JWTs.
package jwtauth

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

var ErrSecretIsRequired = errs.NewValueIsRequiredError("jwt secret")

// tokenClaims is the JWT payload. Subject carries the account ID; email and
// role ride along so logs and debugging tools can identify the caller without
// a database lookup.
type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// JWTTokenProvider signs and verifies bearer tokens using a shared HS256 secret.
type JWTTokenProvider struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTTokenProvider creates a token provider.
// ttl bounds how long issued tokens stay valid.
func NewJWTTokenProvider(secret string, ttl time.Duration) (*JWTTokenProvider, error) {
	if secret == "" {
		return nil, ErrSecretIsRequired
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidError("jwt ttl")
	}

	return &JWTTokenProvider{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Sign produces a signed, time-limited token carrying the claims.
func (p *JWTTokenProvider) Sign(claims ports.AuthClaims) (string, error) {
	if err := claims.SubjectID.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.SubjectID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
		Email: claims.Email,
		Role:  claims.Role.String(),
	})

	return token.SignedString(p.secret)
}

// Verify checks the token's signature and expiry and returns its claims.
// All parse failures surface as an AuthenticationError so the HTTP layer maps
// them to 401 without inspecting JWT internals.
func (p *JWTTokenProvider) Verify(token string) (ports.AuthClaims, error) {
	var claims tokenClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ports.AuthClaims{}, errs.NewAuthenticationErrorWithCause("token is invalid or expired", err)
	}

	subjectID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return ports.AuthClaims{}, errs.NewAuthenticationErrorWithCause("token subject is not a valid ID", err)
	}

	role, err := account.RoleFromString(claims.Role)
	if err != nil {
		return ports.AuthClaims{}, errs.NewAuthenticationErrorWithCause("token role is not recognized", err)
	}

	return ports.AuthClaims{
		SubjectID: subjectID,
		Email:     claims.Email,
		Role:      role,
	}, nil
}
