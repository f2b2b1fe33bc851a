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

// GetProfileQueryHandler retrieves the caller's profile from the database.
type GetProfileQueryHandler struct {
	db *gorm.DB
}

// NewGetProfileQueryHandler creates a handler for profile queries.
func NewGetProfileQueryHandler(db *gorm.DB) GetProfileQueryHandler {
	return GetProfileQueryHandler{db: db}
}

// Handle executes the query to retrieve the caller's profile.
func (h GetProfileQueryHandler) Handle(
	ctx context.Context,
	query GetProfileQuery,
) (GetProfileQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProfileQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			username,
			email,
			role,
			is_active,
			last_login
		FROM accounts
		WHERE id = ?
	`, query.AccountID().Bytes()).Row()

	var response GetProfileQueryResponse
	var id uuid.UUID
	var role string
	var lastLogin sql.NullTime

	err := row.Scan(&id, &response.Username, &response.Email, &role, &response.IsActive, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetProfileQueryResponse{}, errs.NewObjectNotFoundError("accountId", query.AccountID())
		}
		return GetProfileQueryResponse{}, err
	}

	accountID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetProfileQueryResponse{}, err
	}
	response.ID = accountID

	parsedRole, err := account.RoleFromString(role)
	if err != nil {
		return GetProfileQueryResponse{}, err
	}
	response.Role = parsedRole

	if lastLogin.Valid {
		login := lastLogin.Time
		response.LastLogin = &login
	}

	return response, nil
}
