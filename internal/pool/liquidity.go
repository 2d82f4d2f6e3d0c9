package pool

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/dexmath"
	"github.com/fleshka4/tradingpair/internal/pricing"
)

// Provide deposits both assets from caller and mints shares for the amount of
// asset A the pool actually received. The first deposit into an empty pool
// mints BootstrapShares whatever the two amounts are, but each deposit must be
// positive: a zero amount of either asset is rejected with ErrInvalidArgument
// before anything moves, so the bootstrap shares are never free. If no shares
// would be minted, or the minted amount
// deviates from expectedShares by more than slippage (10^12-scaled percent),
// both deposits are refunded and nothing is minted.
func (p *Pool) Provide(
	ctx context.Context,
	caller common.Address,
	depositA, depositB, expectedShares, slippage *uint256.Int,
) (*uint256.Int, error) {
	if depositA.IsZero() || depositB.IsZero() {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "deposits must be positive")
	}

	if err := p.checkFunds(ctx, p.assetA, "asset A", caller, depositA); err != nil {
		return nil, err
	}
	if err := p.checkFunds(ctx, p.assetB, "asset B", caller, depositB); err != nil {
		return nil, err
	}

	receivedA, err := p.pull(ctx, p.assetA, "asset A", caller, depositA)
	if err != nil {
		return nil, err
	}
	refundA := refundLeg{ledger: p.assetA, name: "asset A", to: caller, amount: receivedA}

	receivedB, err := p.pull(ctx, p.assetB, "asset B", caller, depositB)
	if err != nil {
		return nil, p.refund(ctx, err, refundA)
	}
	refundB := refundLeg{ledger: p.assetB, name: "asset B", to: caller, amount: receivedB}

	shares, err := p.sharesForDeposit(ctx, receivedA)
	if err != nil {
		return nil, p.refund(ctx, err, refundA, refundB)
	}
	if shares.IsZero() {
		return nil, p.refund(ctx, errors.Wrapf(apperrors.ErrZeroShares, "deposit of %s asset A", receivedA.Dec()), refundA, refundB)
	}

	deviation, err := pricing.Deviation(expectedShares, shares)
	if err != nil {
		return nil, p.refund(ctx, err, refundA, refundB)
	}
	if deviation.Gt(slippage) {
		return nil, p.refund(ctx, apperrors.Slippage("shares", slippage, deviation), refundA, refundB)
	}

	if err := p.mint(caller, shares); err != nil {
		return nil, p.refund(ctx, err, refundA, refundB)
	}

	p.logger.Debug("liquidity provided",
		zap.String("caller", caller.Hex()),
		zap.String("received_a", receivedA.Dec()),
		zap.String("received_b", receivedB.Dec()),
		zap.String("shares", shares.Dec()),
	)
	return shares, nil
}

// sharesForDeposit prices a deposit already held by the pool. The reserve it
// is measured against is the current reserve minus the deposit itself.
func (p *Pool) sharesForDeposit(ctx context.Context, receivedA *uint256.Int) (*uint256.Int, error) {
	if p.totalShares.IsZero() {
		return BootstrapShares.Clone(), nil
	}

	reserveA, err := p.ReserveA(ctx)
	if err != nil {
		return nil, err
	}
	before, err := dexmath.Sub(reserveA, receivedA)
	if err != nil {
		return nil, errors.Wrap(err, "reserve before deposit")
	}
	return dexmath.MulDiv(receivedA, p.totalShares, before)
}

// Withdraw burns shares of caller and pays out the proportional part of each
// reserve. Shares are burned only after both payouts went through; a failed
// asset B payout is reported after asset A was already paid.
func (p *Pool) Withdraw(ctx context.Context, caller common.Address, shares *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	if shares.IsZero() {
		return nil, nil, errors.Wrap(apperrors.ErrInvalidArgument, "shares must be positive")
	}
	if err := p.debitCheck(caller, shares); err != nil {
		return nil, nil, err
	}

	amountA, amountB, err := p.WithdrawAmounts(ctx, shares)
	if err != nil {
		return nil, nil, err
	}

	if err := p.push(ctx, p.assetA, "withdraw asset A", caller, amountA); err != nil {
		return nil, nil, err
	}
	if err := p.push(ctx, p.assetB, "withdraw asset B", caller, amountB); err != nil {
		p.logger.Error("withdraw left asset A paid out",
			zap.String("caller", caller.Hex()),
			zap.String("amount_a", amountA.Dec()),
			zap.Error(err),
		)
		return nil, nil, err
	}

	if err := p.burn(caller, shares); err != nil {
		return nil, nil, errors.Wrap(err, "burn after payout")
	}

	p.logger.Debug("liquidity withdrawn",
		zap.String("caller", caller.Hex()),
		zap.String("shares", shares.Dec()),
		zap.String("amount_a", amountA.Dec()),
		zap.String("amount_b", amountB.Dec()),
	)
	return amountA, amountB, nil
}

// WithdrawAmounts returns what redeeming shares would pay out of each reserve.
func (p *Pool) WithdrawAmounts(ctx context.Context, shares *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	if p.totalShares.IsZero() {
		return nil, nil, errors.Wrap(apperrors.ErrInsufficientLiquidity, "no shares issued")
	}

	reserveA, reserveB, err := p.Reserves(ctx)
	if err != nil {
		return nil, nil, err
	}
	amountA, err := dexmath.MulDiv(shares, reserveA, p.totalShares)
	if err != nil {
		return nil, nil, err
	}
	amountB, err := dexmath.MulDiv(shares, reserveB, p.totalShares)
	if err != nil {
		return nil, nil, err
	}
	return amountA, amountB, nil
}

// ExpectedShares returns the shares a deposit of depositA would mint at the
// current reserves, assuming the pool receives it in full.
func (p *Pool) ExpectedShares(ctx context.Context, depositA *uint256.Int) (*uint256.Int, error) {
	if p.totalShares.IsZero() {
		return BootstrapShares.Clone(), nil
	}

	reserveA, err := p.ReserveA(ctx)
	if err != nil {
		return nil, err
	}
	return dexmath.MulDiv(depositA, p.totalShares, reserveA)
}

// LockedAmounts returns the part of each reserve owned by account.
func (p *Pool) LockedAmounts(ctx context.Context, account common.Address) (*uint256.Int, *uint256.Int, error) {
	shares := p.ShareOf(account)
	if shares.IsZero() {
		return dexmath.Zero(), dexmath.Zero(), nil
	}
	return p.WithdrawAmounts(ctx, shares)
}
