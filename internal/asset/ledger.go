// Package asset defines the fungible-asset capability consumed by the pool.
package asset

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

//go:generate mockgen -source=ledger.go -destination=mock/ledger.go -package=mock

// Ledger is a fungible-asset ledger the pool holds balances on.
//
// Transfer and TransferFrom act on behalf of caller: Transfer moves caller's
// own funds, TransferFrom spends caller's allowance from the owner. A ledger
// may call back into the pool before either returns.
type Ledger interface {
	// ID returns the asset identifier.
	ID() common.Address
	// BalanceOf returns the balance of account.
	BalanceOf(ctx context.Context, account common.Address) (*uint256.Int, error)
	// Allowance returns how much spender may move on behalf of owner.
	Allowance(ctx context.Context, owner, spender common.Address) (*uint256.Int, error)
	// Transfer moves amount from caller to to.
	Transfer(ctx context.Context, caller, to common.Address, amount *uint256.Int) error
	// TransferFrom moves amount from from to to, spending caller's allowance.
	TransferFrom(ctx context.Context, caller, from, to common.Address, amount *uint256.Int) error
}
