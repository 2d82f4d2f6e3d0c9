// Package dexmath implements checked arithmetic over pool balances.
//
// Balances live in the unsigned 128-bit domain. Every operation returns a
// freshly allocated result and never mutates its operands; any result that
// leaves the domain, and any division by zero, yields apperrors.ErrArithmetic.
package dexmath

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/tradingpair/internal/apperrors"
)

var (
	// MaxAmount is the largest representable balance, 2^128-1.
	MaxAmount = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 128), 1)

	// Scale is the fixed-point denominator used for fee rates and percentages.
	Scale = uint256.NewInt(1_000_000_000_000)
)

// Zero returns a new zero amount.
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// Units returns n * 10^12.
func Units(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), Scale)
}

// InDomain reports whether v fits the balance domain.
func InDomain(v *uint256.Int) bool {
	return !v.Gt(MaxAmount)
}

// Mul returns x*y.
func Mul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow || !InDomain(z) {
		return nil, errors.Wrapf(apperrors.ErrArithmetic, "mul %s * %s", x.Dec(), y.Dec())
	}
	return z, nil
}

// Add returns x+y.
func Add(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow || !InDomain(z) {
		return nil, errors.Wrapf(apperrors.ErrArithmetic, "add %s + %s", x.Dec(), y.Dec())
	}
	return z, nil
}

// Sub returns x-y and fails if y > x.
func Sub(x, y *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, errors.Wrapf(apperrors.ErrArithmetic, "sub %s - %s", x.Dec(), y.Dec())
	}
	return z, nil
}

// Div returns floor(x/y) and fails if y is zero.
func Div(x, y *uint256.Int) (*uint256.Int, error) {
	if y.IsZero() {
		return nil, errors.Wrapf(apperrors.ErrArithmetic, "div %s / 0", x.Dec())
	}
	return new(uint256.Int).Div(x, y), nil
}

// MulDiv returns floor(x*y/d), checking the intermediate product.
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	p, err := Mul(x, y)
	if err != nil {
		return nil, err
	}
	return Div(p, d)
}

// AbsDiff returns |x-y|.
func AbsDiff(x, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return new(uint256.Int).Sub(y, x)
	}
	return new(uint256.Int).Sub(x, y)
}

// Min returns the smaller of x and y.
func Min(x, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return x.Clone()
	}
	return y.Clone()
}

// Parse reads a base-10 amount and checks it against the balance domain.
func Parse(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "amount %q", s)
	}
	if !InDomain(v) {
		return nil, errors.Wrapf(apperrors.ErrArithmetic, "amount %s exceeds balance domain", s)
	}
	return v, nil
}

// OrZero returns v, or a new zero amount when v is nil.
func OrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return Zero()
	}
	return v
}
