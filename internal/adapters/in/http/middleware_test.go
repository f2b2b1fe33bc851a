package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenProvider struct {
	mock.Mock
}

func (m *MockTokenProvider) Sign(claims ports.AuthClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockTokenProvider) Verify(token string) (ports.AuthClaims, error) {
	args := m.Called(token)
	return args.Get(0).(ports.AuthClaims), args.Error(1)
}

type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) Handle(
	ctx context.Context, query queries.GetAccountByIDQuery,
) (queries.GetAccountByIDQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetAccountByIDQueryResponse), args.Error(1)
}

func newAuthRequest(token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/driver/profile", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthGateMiddleware(t *testing.T) {
	t.Run("valid token resolves caller and calls next", func(t *testing.T) {
		accountID := kernel.NewUUID()
		claims := ports.AuthClaims{SubjectID: accountID, Email: "driver@example.com", Role: account.RoleDriver}

		tokens := &MockTokenProvider{}
		tokens.On("Verify", "good-token").Return(claims, nil)

		resolver := &MockAccountResolver{}
		resolver.On("Handle", mock.Anything, mock.Anything).Return(queries.GetAccountByIDQueryResponse{
			ID:       accountID,
			Email:    "driver@example.com",
			Role:     account.RoleDriver,
			IsActive: true,
		}, nil)

		c, _ := newAuthRequest("good-token")
		gate := NewAuthGate(tokens, resolver)

		nextCalled := false
		err := gate.Middleware()(func(c echo.Context) error {
			nextCalled = true
			caller, err := callerFromContext(c)
			require.NoError(t, err)
			assert.True(t, caller.ID().IsEqual(accountID))
			assert.Equal(t, account.RoleDriver, caller.Role())
			return nil
		})(c)

		require.NoError(t, err)
		assert.True(t, nextCalled)
		tokens.AssertExpectations(t)
		resolver.AssertExpectations(t)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		tokens := &MockTokenProvider{}
		resolver := &MockAccountResolver{}

		c, rec := newAuthRequest("")
		gate := NewAuthGate(tokens, resolver)

		err := gate.Middleware()(func(c echo.Context) error {
			t.Fatal("next handler should not be called")
			return nil
		})(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		tokens.AssertNotCalled(t, "Verify", mock.Anything)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		tokens := &MockTokenProvider{}
		tokens.On("Verify", "bad-token").Return(
			ports.AuthClaims{}, errs.NewAuthenticationError("token is invalid or expired"),
		)

		c, rec := newAuthRequest("bad-token")
		gate := NewAuthGate(tokens, &MockAccountResolver{})

		err := gate.Middleware()(func(c echo.Context) error {
			t.Fatal("next handler should not be called")
			return nil
		})(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		tokens.AssertExpectations(t)
	})

	t.Run("deleted account is rejected", func(t *testing.T) {
		accountID := kernel.NewUUID()
		claims := ports.AuthClaims{SubjectID: accountID, Email: "gone@example.com", Role: account.RoleDriver}

		tokens := &MockTokenProvider{}
		tokens.On("Verify", "orphan-token").Return(claims, nil)

		resolver := &MockAccountResolver{}
		resolver.On("Handle", mock.Anything, mock.Anything).Return(
			queries.GetAccountByIDQueryResponse{},
			errs.NewObjectNotFoundError("accountId", accountID),
		)

		c, rec := newAuthRequest("orphan-token")
		gate := NewAuthGate(tokens, resolver)

		err := gate.Middleware()(func(c echo.Context) error {
			t.Fatal("next handler should not be called")
			return nil
		})(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resolver.AssertExpectations(t)
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		accountID := kernel.NewUUID()
		claims := ports.AuthClaims{SubjectID: accountID, Email: "off@example.com", Role: account.RoleDriver}

		tokens := &MockTokenProvider{}
		tokens.On("Verify", "stale-token").Return(claims, nil)

		resolver := &MockAccountResolver{}
		resolver.On("Handle", mock.Anything, mock.Anything).Return(queries.GetAccountByIDQueryResponse{
			ID:       accountID,
			Email:    "off@example.com",
			Role:     account.RoleDriver,
			IsActive: false,
		}, nil)

		c, rec := newAuthRequest("stale-token")
		gate := NewAuthGate(tokens, resolver)

		err := gate.Middleware()(func(c echo.Context) error {
			t.Fatal("next handler should not be called")
			return nil
		})(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCallerFromContext(t *testing.T) {
	t.Run("missing caller yields authentication error", func(t *testing.T) {
		c, _ := newAuthRequest("")

		_, err := callerFromContext(c)

		assert.ErrorIs(t, err, errs.ErrNotAuthenticated)
	})

	t.Run("stored caller is returned", func(t *testing.T) {
		c, _ := newAuthRequest("")
		caller, err := services.NewCaller(kernel.NewUUID(), account.RoleAdmin)
		require.NoError(t, err)
		c.Set(callerContextKey, caller)

		got, err := callerFromContext(c)

		require.NoError(t, err)
		assert.Equal(t, caller, got)
	})
}
