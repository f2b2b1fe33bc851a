package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterAccountCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewRegisterAccountCommand("pat", "pat@acme.dev", "s3cretpass", "s3cretpass", "admin")
	require.NoError(t, err)
	assert.Equal(t, "pat", cmd.Username())
	assert.Equal(t, "pat@acme.dev", cmd.Email())
	assert.Equal(t, "s3cretpass", cmd.Password())
	assert.Equal(t, account.RoleAdmin, cmd.Role())
}

func TestNewRegisterAccountCommand_EmptyRoleDefaultsToDriver(t *testing.T) {
	cmd, err := commands.NewRegisterAccountCommand("pat", "pat@acme.dev", "s3cretpass", "s3cretpass", "")
	require.NoError(t, err)
	assert.Equal(t, account.RoleDriver, cmd.Role())
}

func TestNewRegisterAccountCommand_InvalidRole(t *testing.T) {
	_, err := commands.NewRegisterAccountCommand("pat", "pat@acme.dev", "s3cretpass", "s3cretpass", "supervisor")
	require.Error(t, err)
}

func TestNewRegisterAccountCommand_PasswordMismatch(t *testing.T) {
	_, err := commands.NewRegisterAccountCommand("pat", "pat@acme.dev", "s3cretpass", "different1", "driver")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPasswordsDoNotMatch)
}

func TestNewRegisterAccountCommand_MissingFields(t *testing.T) {
	_, err := commands.NewRegisterAccountCommand("", "", "", "", "")
	require.Error(t, err)
}

func TestRegisterAccountCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.RegisterAccountCommand{}
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRegisterAccountCommandIsNotConstructed)
}
