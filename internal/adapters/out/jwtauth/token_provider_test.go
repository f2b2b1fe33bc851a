package jwtauth_test

import (
	"testing"
	"time"

	"dispatch/internal/adapters/out/jwtauth"
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters"

func newProvider(t *testing.T, ttl time.Duration) *jwtauth.JWTTokenProvider {
	t.Helper()
	provider, err := jwtauth.NewJWTTokenProvider(testSecret, ttl)
	require.NoError(t, err)
	return provider
}

func TestJWTTokenProvider_SignAndVerify_RoundTrip(t *testing.T) {
	provider := newProvider(t, time.Hour)

	claims := ports.AuthClaims{
		SubjectID: kernel.NewUUID(),
		Email:     "pat@acme.dev",
		Role:      account.RoleDriver,
	}

	token, err := provider.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verified, err := provider.Verify(token)
	require.NoError(t, err)
	assert.True(t, verified.SubjectID.IsEqual(claims.SubjectID))
	assert.Equal(t, claims.Email, verified.Email)
	assert.Equal(t, claims.Role, verified.Role)
}

func TestJWTTokenProvider_Verify_ExpiredToken(t *testing.T) {
	provider := newProvider(t, time.Nanosecond)

	token, err := provider.Sign(ports.AuthClaims{
		SubjectID: kernel.NewUUID(),
		Email:     "pat@acme.dev",
		Role:      account.RoleDriver,
	})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = provider.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotAuthenticated)
}

func TestJWTTokenProvider_Verify_WrongSecret(t *testing.T) {
	provider := newProvider(t, time.Hour)
	other, err := jwtauth.NewJWTTokenProvider("completely-different-secret-value", time.Hour)
	require.NoError(t, err)

	token, err := provider.Sign(ports.AuthClaims{
		SubjectID: kernel.NewUUID(),
		Email:     "pat@acme.dev",
		Role:      account.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotAuthenticated)
}

func TestJWTTokenProvider_Verify_Garbage(t *testing.T) {
	provider := newProvider(t, time.Hour)

	_, err := provider.Verify("not.a.token")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotAuthenticated)
}

func TestJWTTokenProvider_Sign_InvalidSubject(t *testing.T) {
	provider := newProvider(t, time.Hour)

	_, err := provider.Sign(ports.AuthClaims{Email: "pat@acme.dev", Role: account.RoleDriver})
	require.Error(t, err)
}

func TestNewJWTTokenProvider_MissingSecret(t *testing.T) {
	_, err := jwtauth.NewJWTTokenProvider("", time.Hour)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwtauth.ErrSecretIsRequired)
}
