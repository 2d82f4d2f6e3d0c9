package pool

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/asset/memory"
	"github.com/fleshka4/tradingpair/internal/asset/mock"
	"github.com/fleshka4/tradingpair/internal/dexmath"
)

func TestSwap_WorkedExample(t *testing.T) {
	t.Parallel()

	f := newFixture(t, dexmath.Zero())
	f.bootstrap(t, 1000, 1000)
	f.fund(t, trader, 100, 0)

	res, err := f.pool.SwapAToB(f.ctx, trader, uint256.NewInt(100), uint256.NewInt(90), dexmath.Zero())
	require.NoError(t, err)
	require.Equal(t, uint64(100), res.Received.Uint64())
	require.Equal(t, uint64(90), res.Gross.Uint64())
	require.Equal(t, uint64(88), res.ToCaller.Uint64())
	require.Equal(t, uint64(2), res.ToVault.Uint64())

	require.Equal(t, uint64(88), f.balance(t, f.b, trader))
	require.Equal(t, uint64(2), f.balance(t, f.b, vaultAddr))
	require.Zero(t, f.balance(t, f.a, trader))
	f.requireReserves(t, 1100, 910)
	require.Equal(t, int64(1), f.pool.TradeCount())
	requireConserved(t, f.pool)
}

func TestSwap_BToA(t *testing.T) {
	t.Parallel()

	f := newFixture(t, dexmath.Zero())
	f.bootstrap(t, 1000, 1000)
	require.NoError(t, f.b.Mint(trader, uint256.NewInt(100)))
	require.NoError(t, f.b.Approve(f.ctx, trader, poolAddr, uint256.NewInt(100)))

	res, err := f.pool.SwapBToA(f.ctx, trader, uint256.NewInt(100), uint256.NewInt(90), dexmath.Zero())
	require.NoError(t, err)
	require.Equal(t, uint64(88), res.ToCaller.Uint64())
	require.Equal(t, uint64(88), f.balance(t, f.a, trader))
	require.Equal(t, uint64(2), f.balance(t, f.a, vaultAddr))
	f.requireReserves(t, 910, 1100)
}

func TestSwap_SlippageGate(t *testing.T) {
	t.Parallel()

	// Expecting 100 against a gross quote of 90 deviates by ~10.53%.
	tests := []struct {
		name      string
		tolerance *uint256.Int
		wantErr   error
	}{
		{name: "1% rejects", tolerance: dexmath.Units(1), wantErr: apperrors.ErrSlippageExceeded},
		{name: "just below rejects", tolerance: uint256.NewInt(10_526_315_789_399), wantErr: apperrors.ErrSlippageExceeded},
		{name: "exact deviation passes", tolerance: uint256.NewInt(10_526_315_789_400)},
		{name: "11% passes", tolerance: dexmath.Units(11)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, dexmath.Zero())
			f.bootstrap(t, 1000, 1000)
			f.fund(t, trader, 100, 0)

			_, err := f.pool.SwapAToB(f.ctx, trader, uint256.NewInt(100), uint256.NewInt(100), tt.tolerance)
			if tt.wantErr == nil {
				require.NoError(t, err)
				require.Equal(t, int64(1), f.pool.TradeCount())
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			var amountErr *apperrors.AmountError
			require.ErrorAs(t, err, &amountErr)
			require.True(t, tt.tolerance.Eq(amountErr.Requested))
			require.Equal(t, "10526315789400", amountErr.Available.Dec())

			require.Equal(t, uint64(100), f.balance(t, f.a, trader))
			require.Zero(t, f.balance(t, f.b, trader))
			f.requireReserves(t, 1000, 1000)
			require.Zero(t, f.pool.TradeCount())
		})
	}
}

func TestSwap_Discount(t *testing.T) {
	t.Parallel()

	f := newFixture(t, dexmath.Units(3))
	f.bootstrap(t, 1000, 1000)

	price, err := f.pool.Price(f.ctx, AToB, trader, uint256.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, uint64(88), price.Uint64())

	discounted, err := f.pool.Discounted(f.ctx, trader)
	require.NoError(t, err)
	require.False(t, discounted)

	require.NoError(t, f.ref.Mint(trader, dexmath.Units(3500)))

	discounted, err = f.pool.Discounted(f.ctx, trader)
	require.NoError(t, err)
	require.True(t, discounted)

	// 3% drops to 2%: 9800 * 1000 / (100000 + 9800).
	price, err = f.pool.Price(f.ctx, AToB, trader, uint256.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, uint64(89), price.Uint64())

	f.fund(t, trader, 100, 0)
	res, err := f.pool.SwapAToB(f.ctx, trader, uint256.NewInt(100), price, dexmath.Zero())
	require.NoError(t, err)
	require.Equal(t, uint64(89), res.Gross.Uint64())
}

func TestSwap_Rejected(t *testing.T) {
	t.Parallel()

	t.Run("empty pool", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, dexmath.Zero())
		f.fund(t, trader, 100, 0)
		_, err := f.pool.SwapAToB(f.ctx, trader, uint256.NewInt(100), uint256.NewInt(1), anySlippage)
		require.ErrorIs(t, err, apperrors.ErrInsufficientLiquidity)
	})

	t.Run("output rounds to zero", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, dexmath.Zero())
		f.bootstrap(t, 1000, 1000)
		f.fund(t, trader, 1, 0)
		_, err := f.pool.SwapAToB(f.ctx, trader, uint256.NewInt(1), uint256.NewInt(1), anySlippage)
		require.ErrorIs(t, err, apperrors.ErrInsufficientLiquidity)
		require.Equal(t, uint64(1), f.balance(t, f.a, trader))
	})

	t.Run("insufficient funds", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, dexmath.Zero())
		f.bootstrap(t, 1000, 1000)
		f.fund(t, trader, 50, 0)
		_, err := f.pool.SwapAToB(f.ctx, trader, uint256.NewInt(100), uint256.NewInt(90), anySlippage)
		require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
		require.Equal(t, apperrors.KindInsufficientFunds, apperrors.KindOf(err))
	})

	t.Run("zero amount", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, dexmath.Zero())
		_, err := f.pool.SwapAToB(f.ctx, trader, dexmath.Zero(), dexmath.Zero(), anySlippage)
		require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("unknown direction", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, dexmath.Zero())
		_, err := f.pool.Swap(f.ctx, Direction(7), trader, uint256.NewInt(1), dexmath.Zero(), anySlippage)
		require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestSwap_CallerLegFailsRefundsInput(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ctx := context.Background()

	a := memory.New(assetAID)
	require.NoError(t, a.Mint(poolAddr, uint256.NewInt(1000)))
	require.NoError(t, a.Mint(trader, uint256.NewInt(100)))
	require.NoError(t, a.Approve(ctx, trader, poolAddr, uint256.NewInt(100)))

	b := mock.NewMockLedger(ctrl)
	b.EXPECT().ID().Return(assetBID).AnyTimes()
	b.EXPECT().BalanceOf(gomock.Any(), poolAddr).Return(uint256.NewInt(1000), nil).AnyTimes()
	b.EXPECT().
		Transfer(gomock.Any(), poolAddr, trader, uint256.NewInt(88)).
		Return(errors.New("recipient frozen"))

	p, err := New(Params{
		AssetA:      a,
		AssetB:      b,
		Reference:   memory.New(refID),
		Self:        poolAddr,
		FeeVault:    vaultAddr,
		BaseFeeRate: dexmath.Zero(),
	}, nil)
	require.NoError(t, err)

	_, err = p.SwapAToB(ctx, trader, uint256.NewInt(100), uint256.NewInt(90), dexmath.Zero())
	require.ErrorIs(t, err, apperrors.ErrTransferFailed)
	require.Contains(t, err.Error(), "pay asset B")

	refunded, err := a.BalanceOf(ctx, trader)
	require.NoError(t, err)
	require.Equal(t, uint64(100), refunded.Uint64())
	reserveA, err := p.ReserveA(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), reserveA.Uint64())
	require.Zero(t, p.TradeCount())
}

func TestSwap_FeeVaultLegFails(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ctx := context.Background()
	core, logs := observer.New(zap.ErrorLevel)

	a := memory.New(assetAID)
	require.NoError(t, a.Mint(poolAddr, uint256.NewInt(1000)))
	require.NoError(t, a.Mint(trader, uint256.NewInt(100)))
	require.NoError(t, a.Approve(ctx, trader, poolAddr, uint256.NewInt(100)))

	b := mock.NewMockLedger(ctrl)
	b.EXPECT().ID().Return(assetBID).AnyTimes()
	b.EXPECT().BalanceOf(gomock.Any(), poolAddr).Return(uint256.NewInt(1000), nil).AnyTimes()
	gomock.InOrder(
		b.EXPECT().Transfer(gomock.Any(), poolAddr, trader, uint256.NewInt(88)).Return(nil),
		b.EXPECT().
			Transfer(gomock.Any(), poolAddr, vaultAddr, uint256.NewInt(2)).
			Return(errors.New("vault frozen")),
	)

	p, err := New(Params{
		AssetA:      a,
		AssetB:      b,
		Reference:   memory.New(refID),
		Self:        poolAddr,
		FeeVault:    vaultAddr,
		BaseFeeRate: dexmath.Zero(),
	}, zap.New(core))
	require.NoError(t, err)

	_, err = p.SwapAToB(ctx, trader, uint256.NewInt(100), uint256.NewInt(90), dexmath.Zero())
	require.ErrorIs(t, err, apperrors.ErrTransferFailed)
	require.Contains(t, err.Error(), "fee vault asset B")
	require.Equal(t, apperrors.KindTransfer, apperrors.KindOf(err))
	require.Zero(t, p.TradeCount())

	// The input stays with the pool; undoing the caller leg is left to the host.
	reserveA, err := p.ReserveA(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1100), reserveA.Uint64())

	entries := logs.FilterMessage("swap left caller paid without fee").All()
	require.Len(t, entries, 1)
	require.Equal(t, trader.Hex(), entries[0].ContextMap()["caller"])
	require.Equal(t, "2", entries[0].ContextMap()["to_vault"])
}

func TestSwap_RefundFailureIsCombined(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ctx := context.Background()

	a := mock.NewMockLedger(ctrl)
	a.EXPECT().ID().Return(assetAID).AnyTimes()
	a.EXPECT().BalanceOf(gomock.Any(), trader).Return(uint256.NewInt(100), nil).AnyTimes()
	a.EXPECT().Allowance(gomock.Any(), trader, poolAddr).Return(uint256.NewInt(100), nil)
	gomock.InOrder(
		a.EXPECT().BalanceOf(gomock.Any(), poolAddr).Return(uint256.NewInt(1000), nil).Times(2),
		a.EXPECT().TransferFrom(gomock.Any(), poolAddr, trader, poolAddr, uint256.NewInt(100)).Return(nil),
		a.EXPECT().BalanceOf(gomock.Any(), poolAddr).Return(uint256.NewInt(1100), nil),
	)
	a.EXPECT().
		Transfer(gomock.Any(), poolAddr, trader, uint256.NewInt(100)).
		Return(errors.New("refund rejected"))

	b := memory.New(assetBID)
	require.NoError(t, b.Mint(poolAddr, uint256.NewInt(1000)))

	p, err := New(Params{
		AssetA:      a,
		AssetB:      &failingLedger{Ledger: b},
		Reference:   memory.New(refID),
		Self:        poolAddr,
		FeeVault:    vaultAddr,
		BaseFeeRate: dexmath.Zero(),
	}, nil)
	require.NoError(t, err)

	_, err = p.SwapAToB(ctx, trader, uint256.NewInt(100), uint256.NewInt(90), dexmath.Zero())
	require.ErrorIs(t, err, apperrors.ErrTransferFailed)
	require.Contains(t, err.Error(), "pay asset B")
	require.Contains(t, err.Error(), "refund asset A")
	require.Equal(t, apperrors.KindTransfer, apperrors.KindOf(err))
}

// failingLedger rejects every outgoing transfer.
type failingLedger struct {
	*memory.Ledger
}

func (l *failingLedger) Transfer(context.Context, common.Address, common.Address, *uint256.Int) error {
	return errors.New("outgoing transfers disabled")
}
