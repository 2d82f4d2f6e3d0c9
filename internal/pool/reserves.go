package pool

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/asset"
	"github.com/fleshka4/tradingpair/internal/dexmath"
)

// ReserveA returns the pool's live balance of asset A.
func (p *Pool) ReserveA(ctx context.Context) (*uint256.Int, error) {
	return p.balanceOf(ctx, p.assetA, p.self)
}

// ReserveB returns the pool's live balance of asset B.
func (p *Pool) ReserveB(ctx context.Context) (*uint256.Int, error) {
	return p.balanceOf(ctx, p.assetB, p.self)
}

// Reserves returns both live reserves.
func (p *Pool) Reserves(ctx context.Context) (*uint256.Int, *uint256.Int, error) {
	reserveA, err := p.ReserveA(ctx)
	if err != nil {
		return nil, nil, err
	}
	reserveB, err := p.ReserveB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return reserveA, reserveB, nil
}

// legs orders the ledgers for a swap direction as (in, out).
func (p *Pool) legs(dir Direction) (asset.Ledger, asset.Ledger, error) {
	switch dir {
	case AToB:
		return p.assetA, p.assetB, nil
	case BToA:
		return p.assetB, p.assetA, nil
	default:
		return nil, nil, errors.Wrapf(apperrors.ErrInvalidArgument, "direction %d", dir)
	}
}

func (p *Pool) balanceOf(ctx context.Context, l asset.Ledger, account common.Address) (*uint256.Int, error) {
	v, err := l.BalanceOf(ctx, account)
	if err != nil {
		return nil, readError(l, "balance", err)
	}
	return dexmath.OrZero(v), nil
}

func (p *Pool) allowanceOf(ctx context.Context, l asset.Ledger, owner common.Address) (*uint256.Int, error) {
	v, err := l.Allowance(ctx, owner, p.self)
	if err != nil {
		return nil, readError(l, "allowance", err)
	}
	return dexmath.OrZero(v), nil
}

func readError(l asset.Ledger, what string, err error) error {
	return errors.Wrapf(apperrors.ErrLedgerRead, "%s on %s: %v", what, l.ID().Hex(), err)
}

// checkFunds verifies owner holds amount of the asset and has approved the
// pool for it.
func (p *Pool) checkFunds(ctx context.Context, l asset.Ledger, name string, owner common.Address, amount *uint256.Int) error {
	bal, err := p.balanceOf(ctx, l, owner)
	if err != nil {
		return err
	}
	if bal.Lt(amount) {
		return apperrors.NewAmountError(apperrors.ErrInsufficientFunds, name+" balance", amount, bal)
	}

	allowance, err := p.allowanceOf(ctx, l, owner)
	if err != nil {
		return err
	}
	if allowance.Lt(amount) {
		return apperrors.NewAmountError(apperrors.ErrInsufficientAllowance, name+" allowance", amount, allowance)
	}
	return nil
}

// pull moves amount from owner into the pool and returns what the pool
// actually received, measured as the change in its own balance. If the
// transfer went through but the receipt cannot be measured, the nominal amount
// is sent back before the error is returned.
func (p *Pool) pull(ctx context.Context, l asset.Ledger, name string, owner common.Address, amount *uint256.Int) (*uint256.Int, error) {
	before, err := p.balanceOf(ctx, l, p.self)
	if err != nil {
		return nil, err
	}

	if err := l.TransferFrom(ctx, p.self, owner, p.self, amount); err != nil {
		return nil, apperrors.NewTransferError(l.ID(), "pull "+name, err)
	}

	after, err := p.balanceOf(ctx, l, p.self)
	if err == nil {
		var received *uint256.Int
		if received, err = dexmath.Sub(after, before); err == nil {
			return received, nil
		}
		err = errors.Wrapf(err, "pool balance of %s shrank during pull", name)
	}
	return nil, p.refund(ctx, err, refundLeg{ledger: l, name: name, to: owner, amount: amount})
}

// push sends amount from the pool to to.
func (p *Pool) push(ctx context.Context, l asset.Ledger, leg string, to common.Address, amount *uint256.Int) error {
	if err := l.Transfer(ctx, p.self, to, amount); err != nil {
		return apperrors.NewTransferError(l.ID(), leg, err)
	}
	return nil
}

type refundLeg struct {
	ledger asset.Ledger
	name   string
	to     common.Address
	amount *uint256.Int
}

// refund returns already pulled funds after cause aborted the operation. The
// result is cause combined with every refund that failed.
func (p *Pool) refund(ctx context.Context, cause error, legs ...refundLeg) error {
	combined := cause
	for _, leg := range legs {
		if leg.amount == nil || leg.amount.IsZero() {
			continue
		}
		if err := p.push(ctx, leg.ledger, "refund "+leg.name, leg.to, leg.amount); err != nil {
			p.logger.Error("refund failed",
				zap.String("asset", leg.name),
				zap.String("to", leg.to.Hex()),
				zap.String("amount", leg.amount.Dec()),
				zap.Error(err),
			)
			combined = multierr.Append(combined, err)
		}
	}
	return combined
}

func (p *Pool) assetName(l asset.Ledger) string {
	if l.ID() == p.assetA.ID() {
		return "asset A"
	}
	return "asset B"
}
