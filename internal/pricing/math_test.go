package pricing

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/dexmath"
)

func bi(s string) *uint256.Int {
	return uint256.MustFromDecimal(s)
}

func TestQuote_Basic(t *testing.T) {
	t.Parallel()

	// netIn = 100*100, out = 10000*1000 / (1000*100 + 10000) = 90.9 -> 90
	out, err := Quote(bi("100"), bi("1000"), bi("1000"), bi("0"), false)
	require.NoError(t, err)
	require.Equal(t, "90", out.Dec())
}

func TestQuote_Zeroes(t *testing.T) {
	t.Parallel()

	_, err := Quote(bi("1"), bi("0"), bi("1"), bi("0"), false)
	require.ErrorIs(t, err, apperrors.ErrInsufficientLiquidity)

	_, err = Quote(bi("1"), bi("1"), bi("0"), bi("0"), false)
	require.ErrorIs(t, err, apperrors.ErrInsufficientLiquidity)

	out, err := Quote(bi("0"), bi("1"), bi("1"), bi("0"), false)
	require.NoError(t, err)
	require.True(t, out.IsZero())
}

func TestEffectiveFeePercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		baseFee    *uint256.Int
		discounted bool
		want       uint64
	}{
		{name: "3% no discount", baseFee: dexmath.Units(3), want: 3},
		{name: "3% discounted drops one point", baseFee: dexmath.Units(3), discounted: true, want: 2},
		{name: "1% discounted is halved", baseFee: dexmath.Units(1), discounted: true, want: 0},
		{name: "1.4% discounted is halved", baseFee: bi("1400000000000"), discounted: true, want: 0},
		{name: "0.3% truncates to zero", baseFee: bi("300000000000"), want: 0},
		{name: "2.5% truncates to two", baseFee: bi("2500000000000"), want: 2},
		{name: "2.5% discounted drops one point", baseFee: bi("2500000000000"), discounted: true, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := EffectiveFeePercent(tt.baseFee, tt.discounted)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Uint64())
		})
	}
}

func TestNetAmountIn(t *testing.T) {
	t.Parallel()

	net, err := NetAmountIn(bi("100"), dexmath.Units(3), false)
	require.NoError(t, err)
	require.Equal(t, "9700", net.Dec())

	net, err = NetAmountIn(bi("100"), dexmath.Units(3), true)
	require.NoError(t, err)
	require.Equal(t, "9800", net.Dec())

	_, err = NetAmountIn(bi("100"), dexmath.Units(101), false)
	require.ErrorIs(t, err, apperrors.ErrArithmetic)

	_, err = NetAmountIn(dexmath.MaxAmount, bi("0"), false)
	require.ErrorIs(t, err, apperrors.ErrArithmetic)
}

func TestAmountOut_Overflow(t *testing.T) {
	t.Parallel()

	_, err := AmountOut(dexmath.MaxAmount, bi("1"), bi("2"))
	require.ErrorIs(t, err, apperrors.ErrArithmetic)
}

func TestPriceImpact(t *testing.T) {
	t.Parallel()

	// quote 90; netIn 10000; num = 10000 * (1000 - 90); den = (1000 + 10000)*100 + 10000
	got, err := PriceImpact(bi("100"), bi("1000"), bi("1000"), bi("0"), false)
	require.NoError(t, err)
	require.Equal(t, "8", got.Dec())

	_, err = PriceImpact(bi("100"), bi("0"), bi("1000"), bi("0"), false)
	require.ErrorIs(t, err, apperrors.ErrInsufficientLiquidity)
}

func TestDeviation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected string
		actual   string
		want     string
		wantErr  error
	}{
		{name: "equal", expected: "90", actual: "90", want: "0"},
		{name: "equal zero", expected: "0", actual: "0", want: "0"},
		// |100-90| * 10^12 / 95 = 105263157894, * 100
		{name: "ten apart", expected: "100", actual: "90", want: "10526315789400"},
		{name: "symmetric", expected: "90", actual: "100", want: "10526315789400"},
		{name: "zero mean", expected: "1", actual: "0", wantErr: apperrors.ErrArithmetic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Deviation(bi(tt.expected), bi(tt.actual))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Dec())
		})
	}
}

func TestSplitTraderFee(t *testing.T) {
	t.Parallel()

	for _, gross := range []string{"0", "1", "39", "40", "90", "1000000000000000"} {
		toCaller, toVault, err := SplitTraderFee(bi(gross))
		require.NoError(t, err)

		sum := new(uint256.Int).Add(toCaller, toVault)
		require.Equal(t, gross, sum.Dec())
	}

	toCaller, toVault, err := SplitTraderFee(bi("90"))
	require.NoError(t, err)
	require.Equal(t, "88", toCaller.Dec())
	require.Equal(t, "2", toVault.Dec())
}

func TestDiscountEligible(t *testing.T) {
	t.Parallel()

	require.False(t, DiscountEligible(nil))
	require.False(t, DiscountEligible(bi("3499999999999999")))
	require.True(t, DiscountEligible(dexmath.Units(3500)))
}

func BenchmarkQuote(b *testing.B) {
	ain := bi("1000000000000000000")
	rIn := bi("1234567890000000000000")
	rOut := bi("987654321000000000000000")
	fee := dexmath.Units(3)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Quote(ain, rIn, rOut, fee, false); err != nil {
			b.Fatal(err)
		}
	}
}
