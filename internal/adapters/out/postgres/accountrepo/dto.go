// Package accountrepo provides data transfer objects and mapping functions for
// account persistence. Implements the repository pattern for the account domain
// aggregate, handling conversion between domain entities and database rows.
package accountrepo

import (
	"time"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for persisting account aggregates.
// Email carries a unique index backing the duplicate-registration check; the
// reset token digest is indexed for lookup during password reset completion.
type AccountDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username          string    `gorm:"type:varchar(30);not null"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash      string    `gorm:"type:varchar(100);not null"`
	Role              string    `gorm:"type:varchar(10);not null;index"`
	IsActive          bool      `gorm:"not null;default:true"`
	ResetTokenDigest  *string   `gorm:"type:varchar(64);index"`
	ResetTokenExpires *time.Time
	LastLogin         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts an account domain aggregate to its database representation.
func fromDomain(aggregate *account.Account) AccountDTO {
	return AccountDTO{
		ID:                aggregate.ID().Bytes(),
		Username:          aggregate.Username(),
		Email:             aggregate.Email(),
		PasswordHash:      aggregate.Password().Hash(),
		Role:              aggregate.Role().String(),
		IsActive:          aggregate.IsActive(),
		ResetTokenDigest:  aggregate.ResetTokenDigest(),
		ResetTokenExpires: aggregate.ResetTokenExpires(),
		LastLogin:         aggregate.LastLogin(),
	}
}

// toDomain converts a database DTO to an account domain aggregate.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := account.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	password, err := account.RestorePassword(dto.PasswordHash)
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(
		id,
		dto.Username,
		dto.Email,
		password,
		role,
		dto.IsActive,
		dto.ResetTokenDigest,
		dto.ResetTokenExpires,
		dto.LastLogin,
	)
}
