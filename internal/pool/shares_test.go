package pool

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/dexmath"
)

func sharesPool(t *testing.T) *Pool {
	t.Helper()

	f := newFixture(t, dexmath.Zero())
	require.NoError(t, f.pool.Restore(State{
		TotalShares: "150",
		Balances: map[common.Address]string{
			alice: "100",
			bob:   "50",
		},
	}))
	return f.pool
}

func TestTransferShares(t *testing.T) {
	t.Parallel()

	p := sharesPool(t)

	require.NoError(t, p.TransferShares(alice, trader, uint256.NewInt(30)))
	require.Equal(t, uint64(70), p.ShareOf(alice).Uint64())
	require.Equal(t, uint64(30), p.ShareOf(trader).Uint64())

	err := p.TransferShares(alice, trader, uint256.NewInt(71))
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	t.Run("to self changes nothing", func(t *testing.T) {
		require.NoError(t, p.TransferShares(alice, alice, uint256.NewInt(70)))
		require.Equal(t, uint64(70), p.ShareOf(alice).Uint64())

		err := p.TransferShares(alice, alice, uint256.NewInt(71))
		require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	})

	t.Run("emptied balance is removed", func(t *testing.T) {
		require.NoError(t, p.TransferShares(bob, alice, uint256.NewInt(50)))
		_, ok := p.Snapshot().Balances[bob]
		require.False(t, ok)
	})

	require.Equal(t, uint64(150), p.TotalShares().Uint64())
	requireConserved(t, p)
}

func TestApproveShares(t *testing.T) {
	t.Parallel()

	p := sharesPool(t)

	require.NoError(t, p.ApproveShares(alice, bob, uint256.NewInt(40)))
	require.Equal(t, uint64(40), p.ShareAllowance(alice, bob).Uint64())

	require.NoError(t, p.ApproveShares(alice, bob, uint256.NewInt(10)))
	require.Equal(t, uint64(10), p.ShareAllowance(alice, bob).Uint64())

	err := p.ApproveShares(alice, bob, uint256.NewInt(101))
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	require.Equal(t, uint64(10), p.ShareAllowance(alice, bob).Uint64())

	err = p.ApproveShares(alice, bob, dexmath.MaxAmount)
	require.ErrorIs(t, err, apperrors.ErrArithmetic)

	require.NoError(t, p.ApproveShares(alice, bob, dexmath.Zero()))
	require.Empty(t, p.Snapshot().Allowances)
}

func TestTransferSharesFrom(t *testing.T) {
	t.Parallel()

	p := sharesPool(t)
	require.NoError(t, p.ApproveShares(alice, bob, uint256.NewInt(60)))

	t.Run("without allowance", func(t *testing.T) {
		err := p.TransferSharesFrom(trader, alice, trader, uint256.NewInt(1))
		require.ErrorIs(t, err, apperrors.ErrInsufficientAllowance)
	})

	t.Run("spends allowance", func(t *testing.T) {
		require.NoError(t, p.TransferSharesFrom(bob, alice, trader, uint256.NewInt(45)))
		require.Equal(t, uint64(55), p.ShareOf(alice).Uint64())
		require.Equal(t, uint64(45), p.ShareOf(trader).Uint64())
		require.Equal(t, uint64(15), p.ShareAllowance(alice, bob).Uint64())
	})

	t.Run("above allowance", func(t *testing.T) {
		err := p.TransferSharesFrom(bob, alice, trader, uint256.NewInt(16))
		require.ErrorIs(t, err, apperrors.ErrInsufficientAllowance)

		var amountErr *apperrors.AmountError
		require.ErrorAs(t, err, &amountErr)
		require.Equal(t, uint64(15), amountErr.Available.Uint64())
	})

	t.Run("allowance above balance", func(t *testing.T) {
		require.NoError(t, p.TransferShares(alice, trader, uint256.NewInt(50)))
		err := p.TransferSharesFrom(bob, alice, trader, uint256.NewInt(10))
		require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
		require.Equal(t, uint64(15), p.ShareAllowance(alice, bob).Uint64())
	})

	t.Run("back to the owner spends allowance only", func(t *testing.T) {
		require.NoError(t, p.TransferSharesFrom(bob, alice, alice, uint256.NewInt(5)))
		require.Equal(t, uint64(5), p.ShareOf(alice).Uint64())
		require.Equal(t, uint64(10), p.ShareAllowance(alice, bob).Uint64())
	})

	requireConserved(t, p)
}
