package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetProfileQueryIsNotConstructed = errors.New(
	"GetProfileQuery must be created via NewGetProfileQuery constructor",
)

// GetProfileQuery retrieves the caller's own account, credential stripped.
// The account ID always comes from the authenticated context, never from the
// request, so no access policy check is needed here.
type GetProfileQuery struct {
	accountID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetProfileQuery creates a query for the caller's profile.
func NewGetProfileQuery(accountID kernel.UUID) (GetProfileQuery, error) {
	if err := accountID.Validate(); err != nil {
		return GetProfileQuery{}, errs.NewValueIsRequiredError("accountId")
	}

	return GetProfileQuery{
		accountID: accountID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetProfileQueryIsNotConstructed)
}

// AccountID returns the account to fetch.
func (q GetProfileQuery) AccountID() kernel.UUID {
	return q.accountID
}

// GetProfileQueryResponse represents the caller's profile read model.
type GetProfileQueryResponse struct {
	ID        kernel.UUID
	Username  string
	Email     string
	Role      account.Role
	IsActive  bool
	LastLogin *time.Time
}
