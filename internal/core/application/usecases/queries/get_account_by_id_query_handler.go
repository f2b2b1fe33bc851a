package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAccountByIDQueryHandler resolves a token subject against the accounts table.
type GetAccountByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetAccountByIDQueryHandler creates a handler for identity resolution queries.
func NewGetAccountByIDQueryHandler(db *gorm.DB) GetAccountByIDQueryHandler {
	return GetAccountByIDQueryHandler{db: db}
}

// Handle executes the query to resolve the account.
// Returns an ObjectNotFoundError when the account no longer exists.
func (h GetAccountByIDQueryHandler) Handle(
	ctx context.Context,
	query GetAccountByIDQuery,
) (GetAccountByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAccountByIDQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			email,
			role,
			is_active
		FROM accounts
		WHERE id = ?
	`, query.AccountID().Bytes()).Row()

	var response GetAccountByIDQueryResponse
	var id uuid.UUID
	var role string

	err := row.Scan(&id, &response.Email, &role, &response.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetAccountByIDQueryResponse{}, errs.NewObjectNotFoundError("accountId", query.AccountID())
		}
		return GetAccountByIDQueryResponse{}, err
	}

	accountID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetAccountByIDQueryResponse{}, err
	}
	response.ID = accountID

	parsedRole, err := account.RoleFromString(role)
	if err != nil {
		return GetAccountByIDQueryResponse{}, err
	}
	response.Role = parsedRole

	return response, nil
}
