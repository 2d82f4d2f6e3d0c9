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

// SwapResult describes an executed swap.
type SwapResult struct {
	// Received is what the pool measured arriving from the caller.
	Received *uint256.Int
	// Gross is the quoted output before the trader fee split.
	Gross    *uint256.Int
	ToCaller *uint256.Int
	ToVault  *uint256.Int
}

// SwapAToB swaps amountIn of asset A for asset B.
func (p *Pool) SwapAToB(ctx context.Context, caller common.Address, amountIn, expectedOut, slippage *uint256.Int) (*SwapResult, error) {
	return p.Swap(ctx, AToB, caller, amountIn, expectedOut, slippage)
}

// SwapBToA swaps amountIn of asset B for asset A.
func (p *Pool) SwapBToA(ctx context.Context, caller common.Address, amountIn, expectedOut, slippage *uint256.Int) (*SwapResult, error) {
	return p.Swap(ctx, BToA, caller, amountIn, expectedOut, slippage)
}

// Swap takes amountIn of the input asset from caller and pays out the quoted
// output, less the trader fee which goes to the fee vault. The quote uses the
// reserves as they were before the input arrived. The swap is rejected before
// any transfer when the gross quote deviates from expectedOut by more than
// slippage. If paying the caller fails the input is sent back.
func (p *Pool) Swap(
	ctx context.Context,
	dir Direction,
	caller common.Address,
	amountIn, expectedOut, slippage *uint256.Int,
) (*SwapResult, error) {
	in, out, err := p.legs(dir)
	if err != nil {
		return nil, err
	}
	if amountIn.IsZero() {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "amount in must be positive")
	}
	inName, outName := p.assetName(in), p.assetName(out)

	if err := p.checkFunds(ctx, in, inName, caller, amountIn); err != nil {
		return nil, err
	}

	gross, err := p.Price(ctx, dir, caller, amountIn)
	if err != nil {
		return nil, err
	}
	if gross.IsZero() {
		return nil, errors.Wrapf(apperrors.ErrInsufficientLiquidity, "%s of %s buys nothing", amountIn.Dec(), inName)
	}

	toCaller, toVault, err := pricing.SplitTraderFee(gross)
	if err != nil {
		return nil, err
	}

	deviation, err := pricing.Deviation(expectedOut, gross)
	if err != nil {
		return nil, err
	}
	if deviation.Gt(slippage) {
		return nil, apperrors.Slippage("swap output", slippage, deviation)
	}

	received, err := p.pull(ctx, in, inName, caller, amountIn)
	if err != nil {
		return nil, err
	}

	if err := p.push(ctx, out, "pay "+outName, caller, toCaller); err != nil {
		return nil, p.refund(ctx, err, refundLeg{ledger: in, name: inName, to: caller, amount: received})
	}
	if err := p.push(ctx, out, "fee vault "+outName, p.feeVault, toVault); err != nil {
		p.logger.Error("swap left caller paid without fee",
			zap.String("caller", caller.Hex()),
			zap.String("to_vault", toVault.Dec()),
			zap.Error(err),
		)
		return nil, err
	}

	p.tradeCount++

	p.logger.Debug("swap executed",
		zap.Stringer("direction", dir),
		zap.String("caller", caller.Hex()),
		zap.String("received", received.Dec()),
		zap.String("gross", gross.Dec()),
		zap.String("to_caller", toCaller.Dec()),
		zap.String("to_vault", toVault.Dec()),
		zap.Int64("trade_count", p.tradeCount),
	)
	return &SwapResult{
		Received: received,
		Gross:    gross,
		ToCaller: toCaller,
		ToVault:  toVault,
	}, nil
}

// Price quotes the gross output of swapping amountIn for caller, honouring the
// caller's loyalty discount.
func (p *Pool) Price(ctx context.Context, dir Direction, caller common.Address, amountIn *uint256.Int) (*uint256.Int, error) {
	reserveIn, reserveOut, discounted, err := p.quoteInputs(ctx, dir, caller)
	if err != nil {
		return nil, err
	}
	return pricing.Quote(amountIn, reserveIn, reserveOut, p.baseFeeRate, discounted)
}

// PriceImpact re-prices amountIn against the reserves the trade would leave.
func (p *Pool) PriceImpact(ctx context.Context, dir Direction, caller common.Address, amountIn *uint256.Int) (*uint256.Int, error) {
	reserveIn, reserveOut, discounted, err := p.quoteInputs(ctx, dir, caller)
	if err != nil {
		return nil, err
	}
	return pricing.PriceImpact(amountIn, reserveIn, reserveOut, p.baseFeeRate, discounted)
}

// PriceForOne quotes one whole unit (10^12) of the input asset.
func (p *Pool) PriceForOne(ctx context.Context, dir Direction, caller common.Address) (*uint256.Int, error) {
	return p.Price(ctx, dir, caller, dexmath.Units(1))
}

// CurrentPrice quotes 100 whole units of asset A in asset B.
func (p *Pool) CurrentPrice(ctx context.Context, caller common.Address) (*uint256.Int, error) {
	return p.Price(ctx, AToB, caller, dexmath.Units(100))
}

// Discounted reports whether caller holds enough of the reference asset for
// the loyalty discount.
func (p *Pool) Discounted(ctx context.Context, caller common.Address) (bool, error) {
	bal, err := p.balanceOf(ctx, p.reference, caller)
	if err != nil {
		return false, err
	}
	return pricing.DiscountEligible(bal), nil
}

func (p *Pool) quoteInputs(ctx context.Context, dir Direction, caller common.Address) (*uint256.Int, *uint256.Int, bool, error) {
	in, out, err := p.legs(dir)
	if err != nil {
		return nil, nil, false, err
	}
	reserveIn, err := p.balanceOf(ctx, in, p.self)
	if err != nil {
		return nil, nil, false, err
	}
	reserveOut, err := p.balanceOf(ctx, out, p.self)
	if err != nil {
		return nil, nil, false, err
	}
	discounted, err := p.Discounted(ctx, caller)
	if err != nil {
		return nil, nil, false, err
	}
	return reserveIn, reserveOut, discounted, nil
}
