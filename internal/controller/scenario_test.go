package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerd/internal/ledger/store/memory"
	"ledgerd/pkg/domain"
	dErrors "ledgerd/pkg/domain-errors"
	"ledgerd/pkg/testutil"
)

func newScenarioService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(context.Background(), memory.New(), Config{
		Owner:          owner,
		SystemAccounts: []domain.Address{system},
		Challenge:      challenge,
	})
	require.NoError(t, err)
	return svc
}

func TestTokenLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	svc := newScenarioService(t)

	testutil.Given(t, "a freshly deployed ledger", func(t *testing.T) {
		assert.Equal(t, "0", svc.TotalSupply().Dec())

		testutil.When(t, "an ordinary account tries to mint 666", func(t *testing.T) {
			_, err := svc.Mint(ctx, alice, u(666))

			testutil.Then(t, "it is unauthorized and supply stays zero", func(t *testing.T) {
				assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
				assert.Equal(t, "0", svc.TotalSupply().Dec())
			})
		})

		testutil.When(t, "the system account mints 48000 and burns 1700", func(t *testing.T) {
			_, err := svc.Mint(ctx, system, u(48000))
			require.NoError(t, err)
			_, err = svc.Burn(ctx, system, u(1700))
			require.NoError(t, err)

			testutil.Then(t, "supply and balance are 46300", func(t *testing.T) {
				assert.Equal(t, "46300", svc.TotalSupply().Dec())
				assert.Equal(t, "46300", svc.BalanceOf(system).Dec())
			})
		})

		testutil.When(t, "it mints 82300 to a customer and burns 82000 from them", func(t *testing.T) {
			_, err := svc.MintTo(ctx, system, bob, u(82300))
			require.NoError(t, err)
			_, err = svc.BurnFrom(ctx, system, bob, u(82000))
			require.NoError(t, err)

			testutil.Then(t, "the customer keeps 300", func(t *testing.T) {
				assert.Equal(t, "300", svc.BalanceOf(bob).Dec())
			})
			testutil.And(t, "supply still equals the sum of balances", func(t *testing.T) {
				assert.Equal(t, "46600", svc.TotalSupply().Dec())
			})
		})
	})
}

func TestComplianceScenario(t *testing.T) {
	ctx := context.Background()
	svc := newScenarioService(t)

	testutil.Given(t, "a customer holding 88000", func(t *testing.T) {
		_, err := svc.MintTo(ctx, system, alice, u(88000))
		require.NoError(t, err)

		testutil.When(t, "they transfer 3400", func(t *testing.T) {
			_, err := svc.Transfer(ctx, alice, bob, u(3400))
			require.NoError(t, err)

			testutil.Then(t, "both balances reflect it", func(t *testing.T) {
				assert.Equal(t, "84600", svc.BalanceOf(alice).Dec())
				assert.Equal(t, "3400", svc.BalanceOf(bob).Dec())
			})
		})

		testutil.When(t, "the owner bans them and they try to send 1840", func(t *testing.T) {
			_, err := svc.Ban(ctx, owner, alice)
			require.NoError(t, err)
			_, err = svc.Transfer(ctx, alice, bob, u(1840))

			testutil.Then(t, "the transfer is denied without side effects", func(t *testing.T) {
				assert.True(t, dErrors.HasCode(err, dErrors.CodeComplianceDenied))
				assert.Equal(t, "84600", svc.BalanceOf(alice).Dec())
				assert.Equal(t, "3400", svc.BalanceOf(bob).Dec())
			})
		})
	})
}
