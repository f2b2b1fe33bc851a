package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetAccountByIDQueryIsNotConstructed = errors.New(
	"GetAccountByIDQuery must be created via NewGetAccountByIDQuery constructor",
)

// GetAccountByIDQuery resolves a token subject to a live account.
// Used by the authentication gate on every authenticated request: a token
// whose subject was deleted or deactivated must stop being accepted.
type GetAccountByIDQuery struct {
	accountID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAccountByIDQuery creates a query resolving an account by ID.
func NewGetAccountByIDQuery(accountID kernel.UUID) (GetAccountByIDQuery, error) {
	if err := accountID.Validate(); err != nil {
		return GetAccountByIDQuery{}, errs.NewValueIsRequiredError("accountId")
	}

	return GetAccountByIDQuery{
		accountID: accountID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAccountByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetAccountByIDQueryIsNotConstructed)
}

// AccountID returns the account to resolve.
func (q GetAccountByIDQuery) AccountID() kernel.UUID {
	return q.accountID
}

// GetAccountByIDQueryResponse is the minimal identity read model the
// authentication gate needs.
type GetAccountByIDQueryResponse struct {
	ID       kernel.UUID
	Email    string
	Role     account.Role
	IsActive bool
}
