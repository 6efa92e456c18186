package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
)

var (
	owner    = domain.Address{0x01}
	operator = domain.Address{0x02}
	stranger = domain.Address{0x03}
)

func TestNew(t *testing.T) {
	_, err := New(domain.ZeroAddress)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	c, err := New(owner, operator)
	require.NoError(t, err)
	assert.Equal(t, owner, c.Owner())
	assert.True(t, c.IsSystemAccount(operator))
	assert.False(t, c.IsSystemAccount(owner), "owner is not implicitly a system account")
}

func TestSystemAccounts(t *testing.T) {
	t.Run("owner adds and removes idempotently", func(t *testing.T) {
		c, err := New(owner)
		require.NoError(t, err)

		changed, err := c.AddSystemAccount(owner, operator)
		require.NoError(t, err)
		assert.True(t, changed)
		changed, err = c.AddSystemAccount(owner, operator)
		require.NoError(t, err)
		assert.False(t, changed)
		require.NoError(t, c.RequireSystem(operator))

		changed, err = c.RemoveSystemAccount(owner, operator)
		require.NoError(t, err)
		assert.True(t, changed)
		changed, err = c.RemoveSystemAccount(owner, operator)
		require.NoError(t, err)
		assert.False(t, changed)

		err = c.RequireSystem(operator)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized), "revocation is immediate")
	})

	t.Run("non-owner cannot manage the set", func(t *testing.T) {
		c, err := New(owner, operator)
		require.NoError(t, err)

		_, err = c.AddSystemAccount(operator, stranger)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		_, err = c.RemoveSystemAccount(stranger, operator)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.Equal(t, []domain.Address{operator}, c.SystemAccounts())
	})

	t.Run("listing is sorted", func(t *testing.T) {
		c, err := New(owner, stranger, operator)
		require.NoError(t, err)
		assert.Equal(t, []domain.Address{operator, stranger}, c.SystemAccounts())
	})
}

func TestTransferOwnership(t *testing.T) {
	c, err := New(owner)
	require.NoError(t, err)

	err = c.TransferOwnership(stranger, stranger)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	err = c.TransferOwnership(owner, domain.ZeroAddress)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	require.NoError(t, c.TransferOwnership(owner, operator))
	assert.Equal(t, operator, c.Owner())
	assert.Error(t, c.RequireOwner(owner))
	assert.NoError(t, c.RequireOwner(operator))
}
