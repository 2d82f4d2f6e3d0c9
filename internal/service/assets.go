package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/asset/memory"
	"github.com/fleshka4/tradingpair/internal/service/dto"
	"github.com/fleshka4/tradingpair/internal/service/validate"
)

// ApproveAsset lets spender move up to the requested amount of the caller's
// balance of a hosted asset. Approving the pool is what enables provide and
// swap for in-process assets.
func (s *PoolService) ApproveAsset(ctx context.Context, req dto.ApproveAssetRequest) error {
	if err := validate.ApproveAssetRequestValidate(req); err != nil {
		return err
	}
	l, err := s.ledger(req.Asset)
	if err != nil {
		return err
	}
	return s.mutate(ctx, "approve_asset", func() error {
		return l.Approve(ctx, req.Caller, req.Spender, req.Amount)
	})
}

// AssetBalance returns account's balance of a hosted asset.
func (s *PoolService) AssetBalance(ctx context.Context, asset, account common.Address) (*uint256.Int, error) {
	var out *uint256.Int
	err := s.query("asset_balance", func() error {
		l, err := s.ledger(asset)
		if err != nil {
			return err
		}
		out, err = l.BalanceOf(ctx, account)
		return err
	})
	return out, err
}

// AssetAllowance returns how much of owner's hosted asset spender may move.
func (s *PoolService) AssetAllowance(ctx context.Context, asset, owner, spender common.Address) (*uint256.Int, error) {
	var out *uint256.Int
	err := s.query("asset_allowance", func() error {
		l, err := s.ledger(asset)
		if err != nil {
			return err
		}
		out, err = l.Allowance(ctx, owner, spender)
		return err
	})
	return out, err
}

func (s *PoolService) ledger(asset common.Address) (*memory.Ledger, error) {
	for _, l := range s.ledgers {
		if l.ID() == asset {
			return l, nil
		}
	}
	return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "asset %s is not hosted", asset.Hex())
}
