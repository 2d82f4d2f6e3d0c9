// Package pricing is the pool's pricing engine. Every function is pure: it
// reads nothing but its arguments and allocates fresh results.
//
// Fees use an integer percentage model. The base fee rate is a numerator over
// 10^12, truncated to whole percentage points, and the input amount is scaled
// by (100 - fee_pct) instead of being reduced by the fee:
//
//	netIn     = amountIn * (100 - fee_pct)
//	amountOut = netIn * reserveOut / (reserveIn*100 + netIn)
package pricing

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/dexmath"
)

var (
	hundred = uint256.NewInt(100)
	two     = uint256.NewInt(2)
	one     = uint256.NewInt(1)

	// DiscountThreshold is the reference-asset balance from which a trader
	// gets the loyalty discount: 3500 * 10^12.
	DiscountThreshold = dexmath.Units(3500)

	// HalvingCap is the highest base fee rate (1.4%) whose fee is halved by the
	// discount. Above it the discount removes one percentage point.
	HalvingCap = uint256.NewInt(1_400_000_000_000)

	// TraderFeeShare is the fraction of gross swap output sent to the fee
	// vault, as a numerator over 10^12 (2.5%).
	TraderFeeShare = uint256.NewInt(25_000_000_000)
)

// DiscountEligible reports whether a reference-asset balance qualifies for the
// loyalty discount.
func DiscountEligible(referenceBalance *uint256.Int) bool {
	return referenceBalance != nil && !referenceBalance.Lt(DiscountThreshold)
}

// FeePercent truncates a 10^12-scaled fee rate to whole percentage points.
func FeePercent(baseFeeRate *uint256.Int) *uint256.Int {
	return new(uint256.Int).Div(baseFeeRate, dexmath.Scale)
}

// EffectiveFeePercent applies the loyalty discount to the base fee.
func EffectiveFeePercent(baseFeeRate *uint256.Int, discounted bool) (*uint256.Int, error) {
	pct := FeePercent(baseFeeRate)
	if !discounted {
		return pct, nil
	}
	if !baseFeeRate.Gt(HalvingCap) {
		return new(uint256.Int).Div(pct, two), nil
	}
	return dexmath.Sub(pct, one)
}

// NetAmountIn scales amountIn by the fee multiplier (100 - fee_pct).
func NetAmountIn(amountIn, baseFeeRate *uint256.Int, discounted bool) (*uint256.Int, error) {
	pct, err := EffectiveFeePercent(baseFeeRate, discounted)
	if err != nil {
		return nil, err
	}
	mul, err := dexmath.Sub(hundred, pct)
	if err != nil {
		return nil, errors.Wrap(err, "fee above 100%")
	}
	return dexmath.Mul(amountIn, mul)
}

// AmountOut applies the scaled constant-product formula to a net input.
func AmountOut(netIn, reserveIn, reserveOut *uint256.Int) (*uint256.Int, error) {
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return nil, apperrors.ErrInsufficientLiquidity
	}

	// num := netIn * reserveOut.
	num, err := dexmath.Mul(netIn, reserveOut)
	if err != nil {
		return nil, err
	}

	// den := reserveIn * 100 + netIn.
	den, err := dexmath.Mul(reserveIn, hundred)
	if err != nil {
		return nil, err
	}
	if den, err = dexmath.Add(den, netIn); err != nil {
		return nil, err
	}

	return dexmath.Div(num, den)
}

// Quote returns the gross output for swapping amountIn against the reserves.
func Quote(amountIn, reserveIn, reserveOut, baseFeeRate *uint256.Int, discounted bool) (*uint256.Int, error) {
	netIn, err := NetAmountIn(amountIn, baseFeeRate, discounted)
	if err != nil {
		return nil, err
	}
	return AmountOut(netIn, reserveIn, reserveOut)
}

// PriceImpact re-prices amountIn against the reserves as they would be after
// the quoted trade: reserveOut minus the quote, reserveIn plus the net input.
// The quote honours the discount; the re-priced net input does not.
func PriceImpact(amountIn, reserveIn, reserveOut, baseFeeRate *uint256.Int, discounted bool) (*uint256.Int, error) {
	quoted, err := Quote(amountIn, reserveIn, reserveOut, baseFeeRate, discounted)
	if err != nil {
		return nil, err
	}
	netIn, err := NetAmountIn(amountIn, baseFeeRate, false)
	if err != nil {
		return nil, err
	}

	postOut, err := dexmath.Sub(reserveOut, quoted)
	if err != nil {
		return nil, err
	}
	num, err := dexmath.Mul(netIn, postOut)
	if err != nil {
		return nil, err
	}

	postIn, err := dexmath.Add(reserveIn, netIn)
	if err != nil {
		return nil, err
	}
	den, err := dexmath.Mul(postIn, hundred)
	if err != nil {
		return nil, err
	}
	if den, err = dexmath.Add(den, netIn); err != nil {
		return nil, err
	}

	return dexmath.Div(num, den)
}

// Deviation returns the percentage difference between two values relative to
// their mean, scaled by 10^12:
//
//	100 * (|a-b| * 10^12 / ((a+b)/2))
//
// Equal values deviate by zero.
func Deviation(expected, actual *uint256.Int) (*uint256.Int, error) {
	if expected.Eq(actual) {
		return dexmath.Zero(), nil
	}

	nominated, err := dexmath.Mul(dexmath.AbsDiff(expected, actual), dexmath.Scale)
	if err != nil {
		return nil, err
	}
	sum, err := dexmath.Add(expected, actual)
	if err != nil {
		return nil, err
	}
	ratio, err := dexmath.Div(nominated, new(uint256.Int).Div(sum, two))
	if err != nil {
		return nil, err
	}
	return dexmath.Mul(hundred, ratio)
}

// SplitTraderFee splits a gross output into the caller's and the fee vault's
// parts. The parts always sum to gross.
func SplitTraderFee(gross *uint256.Int) (toCaller, toVault *uint256.Int, err error) {
	toVault, err = dexmath.MulDiv(gross, TraderFeeShare, dexmath.Scale)
	if err != nil {
		return nil, nil, err
	}
	toCaller, err = dexmath.Sub(gross, toVault)
	if err != nil {
		return nil, nil, err
	}
	return toCaller, toVault, nil
}
