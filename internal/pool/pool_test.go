package pool

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/asset/memory"
	"github.com/fleshka4/tradingpair/internal/dexmath"
)

var (
	poolAddr  = common.HexToAddress("0x9001")
	vaultAddr = common.HexToAddress("0xfee")
	assetAID  = common.HexToAddress("0xaa")
	assetBID  = common.HexToAddress("0xbb")
	refID     = common.HexToAddress("0xcc")

	alice  = common.HexToAddress("0x01")
	bob    = common.HexToAddress("0x02")
	trader = common.HexToAddress("0x03")
)

// anySlippage accepts any deviation up to 100%.
var anySlippage = dexmath.Units(100)

type fixture struct {
	ctx  context.Context
	a    *memory.Ledger
	b    *memory.Ledger
	ref  *memory.Ledger
	pool *Pool
}

func newFixture(t *testing.T, baseFee *uint256.Int, opts ...memory.Option) *fixture {
	t.Helper()

	f := &fixture{
		ctx: context.Background(),
		a:   memory.New(assetAID, opts...),
		b:   memory.New(assetBID),
		ref: memory.New(refID),
	}

	p, err := New(Params{
		AssetA:      f.a,
		AssetB:      f.b,
		Reference:   f.ref,
		Self:        poolAddr,
		FeeVault:    vaultAddr,
		BaseFeeRate: baseFee,
	}, zap.NewNop())
	require.NoError(t, err)
	f.pool = p
	return f
}

// fund mints both assets to account and approves the pool for them.
func (f *fixture) fund(t *testing.T, account common.Address, amountA, amountB uint64) {
	t.Helper()

	for _, x := range []struct {
		l      *memory.Ledger
		amount uint64
	}{{f.a, amountA}, {f.b, amountB}} {
		if x.amount == 0 {
			continue
		}
		require.NoError(t, x.l.Mint(account, uint256.NewInt(x.amount)))
		allowance, err := x.l.Allowance(f.ctx, account, poolAddr)
		require.NoError(t, err)
		require.NoError(t, x.l.Approve(f.ctx, account, poolAddr, allowance.AddUint64(allowance, x.amount)))
	}
}

func (f *fixture) balance(t *testing.T, l *memory.Ledger, account common.Address) uint64 {
	t.Helper()

	v, err := l.BalanceOf(f.ctx, account)
	require.NoError(t, err)
	return v.Uint64()
}

func (f *fixture) requireReserves(t *testing.T, wantA, wantB uint64) {
	t.Helper()

	reserveA, reserveB, err := f.pool.Reserves(f.ctx)
	require.NoError(t, err)
	require.Equal(t, wantA, reserveA.Uint64(), "reserve A")
	require.Equal(t, wantB, reserveB.Uint64(), "reserve B")
}

// requireConserved checks that total shares equal the sum of balances.
func requireConserved(t *testing.T, p *Pool) {
	t.Helper()

	sum := dexmath.Zero()
	for _, v := range p.balances {
		require.False(t, v.IsZero(), "zero balance kept in the share ledger")
		sum.Add(sum, v)
		require.False(t, v.Gt(p.totalShares))
	}
	require.True(t, sum.Eq(p.totalShares), "sum %s, total %s", sum.Dec(), p.totalShares.Dec())
}

// bootstrap funds alice and makes the first deposit.
func (f *fixture) bootstrap(t *testing.T, amountA, amountB uint64) {
	t.Helper()

	f.fund(t, alice, amountA, amountB)
	shares, err := f.pool.Provide(f.ctx, alice, uint256.NewInt(amountA), uint256.NewInt(amountB), BootstrapShares, dexmath.Zero())
	require.NoError(t, err)
	require.True(t, BootstrapShares.Eq(shares))
}

func TestNew(t *testing.T) {
	t.Parallel()

	a, b, ref := memory.New(assetAID), memory.New(assetBID), memory.New(refID)
	valid := Params{
		AssetA:      a,
		AssetB:      b,
		Reference:   ref,
		Self:        poolAddr,
		FeeVault:    vaultAddr,
		BaseFeeRate: dexmath.Units(3),
	}

	tests := []struct {
		name   string
		modify func(p *Params)
	}{
		{name: "missing ledger", modify: func(p *Params) { p.Reference = nil }},
		{name: "same assets", modify: func(p *Params) { p.AssetB = memory.New(assetAID) }},
		{name: "zero pool account", modify: func(p *Params) { p.Self = common.Address{} }},
		{name: "zero fee vault", modify: func(p *Params) { p.FeeVault = common.Address{} }},
		{name: "missing fee", modify: func(p *Params) { p.BaseFeeRate = nil }},
		{name: "fee above 100%", modify: func(p *Params) { p.BaseFeeRate = dexmath.Units(101) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := valid
			tt.modify(&params)
			p, err := New(params, nil)
			require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
			require.Nil(t, p)
		})
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		p, err := New(valid, nil)
		require.NoError(t, err)
		require.Equal(t, poolAddr, p.Self())
		require.Equal(t, vaultAddr, p.FeeVault())
		require.True(t, dexmath.Units(3).Eq(p.BaseFeeRate()))
		require.True(t, p.TotalShares().IsZero())
		require.Zero(t, p.TradeCount())

		idA, idB := p.Assets()
		require.Equal(t, assetAID, idA)
		require.Equal(t, assetBID, idB)
	})
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	d, err := ParseDirection("a_to_b")
	require.NoError(t, err)
	require.Equal(t, AToB, d)

	d, err = ParseDirection("b_to_a")
	require.NoError(t, err)
	require.Equal(t, BToA, d)
	require.Equal(t, "b_to_a", d.String())

	_, err = ParseDirection("sideways")
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}
