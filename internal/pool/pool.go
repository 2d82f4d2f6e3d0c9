// Package pool implements a two-asset constant-product trading pair.
//
// A Pool owns the share ledger and the trade counter; reserves are never
// cached and are always read from the asset ledgers as the pool's holding
// account balance. A Pool serves one call at a time and takes no locks. Asset
// ledgers may call back into the pool from inside a transfer, so every
// operation does its state-dependent checks before the first external call and
// mutates the share ledger only after its last transfer.
package pool

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/asset"
	"github.com/fleshka4/tradingpair/internal/dexmath"
	"github.com/fleshka4/tradingpair/internal/pricing"
)

// BootstrapShares is minted for the first deposit into an empty pool.
var BootstrapShares = dexmath.Units(1000)

// Params are fixed when the pool is created.
type Params struct {
	AssetA    asset.Ledger
	AssetB    asset.Ledger
	Reference asset.Ledger

	// Self is the pool's holding account on every asset ledger.
	Self     common.Address
	FeeVault common.Address

	// BaseFeeRate is a numerator over 10^12.
	BaseFeeRate *uint256.Int
}

func (p Params) validate() error {
	if p.AssetA == nil || p.AssetB == nil || p.Reference == nil {
		return errors.Wrap(apperrors.ErrInvalidArgument, "asset ledgers are required")
	}
	if p.AssetA.ID() == p.AssetB.ID() {
		return errors.Wrap(apperrors.ErrInvalidArgument, "pooled assets must differ")
	}
	if p.Self == (common.Address{}) || p.FeeVault == (common.Address{}) {
		return errors.Wrap(apperrors.ErrInvalidArgument, "pool and fee vault accounts are required")
	}
	if p.BaseFeeRate == nil {
		return errors.Wrap(apperrors.ErrInvalidArgument, "base fee rate is required")
	}
	if pricing.FeePercent(p.BaseFeeRate).GtUint64(100) {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "base fee rate %s above 100%%", p.BaseFeeRate.Dec())
	}
	return nil
}

// Pool is a constant-product trading pair.
type Pool struct {
	assetA    asset.Ledger
	assetB    asset.Ledger
	reference asset.Ledger

	self        common.Address
	feeVault    common.Address
	baseFeeRate *uint256.Int

	totalShares *uint256.Int
	balances    map[common.Address]*uint256.Int
	allowances  map[allowanceKey]*uint256.Int
	tradeCount  int64

	logger *zap.Logger
}

// New creates an empty pool. A nil logger disables logging.
func New(p Params, logger *zap.Logger) (*Pool, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pool{
		assetA:    p.AssetA,
		assetB:    p.AssetB,
		reference: p.Reference,

		self:        p.Self,
		feeVault:    p.FeeVault,
		baseFeeRate: p.BaseFeeRate.Clone(),

		totalShares: dexmath.Zero(),
		balances:    make(map[common.Address]*uint256.Int),
		allowances:  make(map[allowanceKey]*uint256.Int),

		logger: logger.With(zap.String("pool", p.Self.Hex())),
	}, nil
}

// Self returns the pool's holding account.
func (p *Pool) Self() common.Address {
	return p.self
}

// FeeVault returns the account receiving the trader fee.
func (p *Pool) FeeVault() common.Address {
	return p.feeVault
}

// Assets returns the ids of asset A and asset B.
func (p *Pool) Assets() (common.Address, common.Address) {
	return p.assetA.ID(), p.assetB.ID()
}

// BaseFeeRate returns the fee rate as a numerator over 10^12.
func (p *Pool) BaseFeeRate() *uint256.Int {
	return p.baseFeeRate.Clone()
}

// TradeCount returns the number of executed swaps.
func (p *Pool) TradeCount() int64 {
	return p.tradeCount
}
