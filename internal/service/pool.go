package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/fleshka4/tradingpair/internal/pool"
	"github.com/fleshka4/tradingpair/internal/service/dto"
	"github.com/fleshka4/tradingpair/internal/service/validate"
)

// Provide deposits both assets and returns the minted shares.
func (s *PoolService) Provide(ctx context.Context, req dto.ProvideRequest) (*uint256.Int, error) {
	if err := validate.ProvideRequestValidate(req); err != nil {
		return nil, err
	}

	var minted *uint256.Int
	err := s.mutate(ctx, "provide", func() error {
		var err error
		minted, err = s.pool.Provide(ctx, req.Caller, req.DepositA, req.DepositB, req.ExpectedShares, req.Slippage)
		return err
	})
	if err != nil {
		return nil, err
	}
	return minted, nil
}

// Withdraw redeems shares and returns the amounts paid out.
func (s *PoolService) Withdraw(ctx context.Context, req dto.WithdrawRequest) (dto.Amounts, error) {
	if err := validate.WithdrawRequestValidate(req); err != nil {
		return dto.Amounts{}, err
	}

	var out dto.Amounts
	err := s.mutate(ctx, "withdraw", func() error {
		var err error
		out.A, out.B, err = s.pool.Withdraw(ctx, req.Caller, req.Shares)
		return err
	})
	if err != nil {
		return dto.Amounts{}, err
	}
	return out, nil
}

// Swap executes a swap in the requested direction.
func (s *PoolService) Swap(ctx context.Context, req dto.SwapRequest) (*pool.SwapResult, error) {
	if err := validate.SwapRequestValidate(req); err != nil {
		return nil, err
	}

	var res *pool.SwapResult
	err := s.mutate(ctx, "swap_"+req.Direction.String(), func() error {
		var err error
		res, err = s.pool.Swap(ctx, req.Direction, req.Caller, req.AmountIn, req.ExpectedOut, req.Slippage)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// TransferShares moves shares owned by the caller.
func (s *PoolService) TransferShares(ctx context.Context, req dto.TransferSharesRequest) error {
	if err := validate.TransferSharesRequestValidate(req); err != nil {
		return err
	}
	return s.mutate(ctx, "transfer_shares", func() error {
		return s.pool.TransferShares(req.Caller, req.To, req.Amount)
	})
}

// ApproveShares sets a share allowance.
func (s *PoolService) ApproveShares(ctx context.Context, req dto.ApproveSharesRequest) error {
	if err := validate.ApproveSharesRequestValidate(req); err != nil {
		return err
	}
	return s.mutate(ctx, "approve_shares", func() error {
		return s.pool.ApproveShares(req.Caller, req.Spender, req.Amount)
	})
}

// TransferSharesFrom moves shares on behalf of their owner.
func (s *PoolService) TransferSharesFrom(ctx context.Context, req dto.TransferSharesFromRequest) error {
	if err := validate.TransferSharesFromRequestValidate(req); err != nil {
		return err
	}
	return s.mutate(ctx, "transfer_shares_from", func() error {
		return s.pool.TransferSharesFrom(req.Caller, req.Owner, req.To, req.Amount)
	})
}

// WithdrawAmounts previews what redeeming shares would pay out.
func (s *PoolService) WithdrawAmounts(ctx context.Context, shares *uint256.Int) (dto.Amounts, error) {
	var out dto.Amounts
	err := s.query("withdraw_amounts", func() error {
		var err error
		out.A, out.B, err = s.pool.WithdrawAmounts(ctx, shares)
		return err
	})
	return out, err
}

// ExpectedShares previews the shares minted for depositA.
func (s *PoolService) ExpectedShares(ctx context.Context, depositA *uint256.Int) (*uint256.Int, error) {
	var shares *uint256.Int
	err := s.query("expected_shares", func() error {
		var err error
		shares, err = s.pool.ExpectedShares(ctx, depositA)
		return err
	})
	return shares, err
}

// Price quotes the gross output of a swap.
func (s *PoolService) Price(ctx context.Context, req dto.QuoteRequest) (*uint256.Int, error) {
	if err := validate.QuoteRequestValidate(req); err != nil {
		return nil, err
	}

	var out *uint256.Int
	err := s.query("price", func() error {
		var err error
		out, err = s.pool.Price(ctx, req.Direction, req.Caller, req.AmountIn)
		return err
	})
	return out, err
}

// PriceImpact reports how far a swap would move the output reserve.
func (s *PoolService) PriceImpact(ctx context.Context, req dto.QuoteRequest) (*uint256.Int, error) {
	if err := validate.QuoteRequestValidate(req); err != nil {
		return nil, err
	}

	var out *uint256.Int
	err := s.query("price_impact", func() error {
		var err error
		out, err = s.pool.PriceImpact(ctx, req.Direction, req.Caller, req.AmountIn)
		return err
	})
	return out, err
}

// PriceForOne quotes one whole unit of the input asset.
func (s *PoolService) PriceForOne(ctx context.Context, dir pool.Direction, caller common.Address) (*uint256.Int, error) {
	var out *uint256.Int
	err := s.query("price_for_one", func() error {
		var err error
		out, err = s.pool.PriceForOne(ctx, dir, caller)
		return err
	})
	return out, err
}

// CurrentPrice quotes 100 units of asset A.
func (s *PoolService) CurrentPrice(ctx context.Context, caller common.Address) (*uint256.Int, error) {
	var out *uint256.Int
	err := s.query("current_price", func() error {
		var err error
		out, err = s.pool.CurrentPrice(ctx, caller)
		return err
	})
	return out, err
}

// Reserves returns both reserves.
func (s *PoolService) Reserves(ctx context.Context) (dto.Amounts, error) {
	var out dto.Amounts
	err := s.query("reserves", func() error {
		var err error
		out.A, out.B, err = s.pool.Reserves(ctx)
		return err
	})
	return out, err
}

// LockedAmounts returns the assets backing account's shares.
func (s *PoolService) LockedAmounts(ctx context.Context, account common.Address) (dto.Amounts, error) {
	var out dto.Amounts
	err := s.query("locked_amounts", func() error {
		var err error
		out.A, out.B, err = s.pool.LockedAmounts(ctx, account)
		return err
	})
	return out, err
}

// TotalShares returns the number of outstanding shares.
func (s *PoolService) TotalShares(_ context.Context) *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.TotalShares()
}

// ShareOf returns the shares held by account.
func (s *PoolService) ShareOf(_ context.Context, account common.Address) *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.ShareOf(account)
}

// ShareAllowance returns how many of owner's shares spender may move.
func (s *PoolService) ShareAllowance(_ context.Context, owner, spender common.Address) *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.ShareAllowance(owner, spender)
}

// TradeCount returns the number of executed swaps.
func (s *PoolService) TradeCount(_ context.Context) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.TradeCount()
}

// Info describes the pool.
func (s *PoolService) Info(_ context.Context) dto.PoolInfo {
	a, b := s.pool.Assets()
	return dto.PoolInfo{
		Self:        s.pool.Self(),
		FeeVault:    s.pool.FeeVault(),
		AssetA:      a,
		AssetB:      b,
		BaseFeeRate: s.pool.BaseFeeRate(),
	}
}
