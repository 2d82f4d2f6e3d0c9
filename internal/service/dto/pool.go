package dto

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/fleshka4/tradingpair/internal/pool"
)

// ProvideRequest deposits both assets in exchange for shares.
type ProvideRequest struct {
	Caller         common.Address
	DepositA       *uint256.Int
	DepositB       *uint256.Int
	ExpectedShares *uint256.Int
	Slippage       *uint256.Int
}

// WithdrawRequest redeems shares for both assets.
type WithdrawRequest struct {
	Caller common.Address
	Shares *uint256.Int
}

// SwapRequest trades one asset for the other.
type SwapRequest struct {
	Caller      common.Address
	Direction   pool.Direction
	AmountIn    *uint256.Int
	ExpectedOut *uint256.Int
	Slippage    *uint256.Int
}

// QuoteRequest prices a hypothetical swap for Caller.
type QuoteRequest struct {
	Caller    common.Address
	Direction pool.Direction
	AmountIn  *uint256.Int
}

// TransferSharesRequest moves shares owned by Caller.
type TransferSharesRequest struct {
	Caller common.Address
	To     common.Address
	Amount *uint256.Int
}

// ApproveSharesRequest sets the share allowance of Spender over Caller's shares.
type ApproveSharesRequest struct {
	Caller  common.Address
	Spender common.Address
	Amount  *uint256.Int
}

// ApproveAssetRequest sets the allowance of Spender over Caller's balance of a
// hosted asset.
type ApproveAssetRequest struct {
	Caller  common.Address
	Asset   common.Address
	Spender common.Address
	Amount  *uint256.Int
}

// TransferSharesFromRequest moves Owner's shares using Caller's allowance.
type TransferSharesFromRequest struct {
	Caller common.Address
	Owner  common.Address
	To     common.Address
	Amount *uint256.Int
}

// Amounts is a pair of asset A and asset B amounts.
type Amounts struct {
	A *uint256.Int
	B *uint256.Int
}

// PoolInfo describes the hosted pool.
type PoolInfo struct {
	Self        common.Address
	FeeVault    common.Address
	AssetA      common.Address
	AssetB      common.Address
	BaseFeeRate *uint256.Int
}
