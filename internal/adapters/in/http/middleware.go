package http

import (
	"context"
	"errors"
	"strings"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// callerContextKey is where the authentication gate stores the resolved caller.
const callerContextKey = "caller"

// accountResolver resolves a token subject to a live account.
// Satisfied by queries.GetAccountByIDQueryHandler.
type accountResolver interface {
	Handle(ctx context.Context, query queries.GetAccountByIDQuery) (queries.GetAccountByIDQueryResponse, error)
}

// AuthGate authenticates requests on protected routes.
// A valid signature alone is not enough: the token subject must still resolve
// to an active account, so deleted or deactivated accounts lose access the
// moment their row changes, not when their token expires.
type AuthGate struct {
	tokens   ports.TokenProvider
	accounts accountResolver
}

// NewAuthGate creates the authentication middleware.
func NewAuthGate(tokens ports.TokenProvider, accounts accountResolver) *AuthGate {
	return &AuthGate{
		tokens:   tokens,
		accounts: accounts,
	}
}

// Middleware returns the echo middleware enforcing bearer authentication.
func (g *AuthGate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, err := g.authenticate(c)
			if err != nil {
				return respondError(c, err)
			}

			c.Set(callerContextKey, caller)
			return next(c)
		}
	}
}

func (g *AuthGate) authenticate(c echo.Context) (services.Caller, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return services.Caller{}, errs.NewAuthenticationError("missing bearer token")
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return services.Caller{}, err
	}

	query, err := queries.NewGetAccountByIDQuery(claims.SubjectID)
	if err != nil {
		return services.Caller{}, err
	}

	resolved, err := g.accounts.Handle(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return services.Caller{}, errs.NewAuthenticationError("account no longer exists")
		}
		return services.Caller{}, err
	}

	if !resolved.IsActive {
		return services.Caller{}, errs.NewAuthenticationError("account is deactivated")
	}

	return services.NewCaller(resolved.ID, resolved.Role)
}

// callerFromContext returns the caller stored by the authentication gate.
func callerFromContext(c echo.Context) (services.Caller, error) {
	caller, ok := c.Get(callerContextKey).(services.Caller)
	if !ok {
		return services.Caller{}, errs.NewAuthenticationError("no authenticated caller in context")
	}
	return caller, nil
}
