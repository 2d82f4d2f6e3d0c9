// Package memory provides an in-process fungible-asset ledger with PSP22
// transfer semantics. The pool server uses it to host both traded assets and
// the reference asset; tests use it to model taxed and re-entrant assets.
package memory

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/dexmath"
)

// TransferHook runs after every completed balance movement, outside the
// ledger lock. It may call back into the ledger or into the pool.
type TransferHook func(ctx context.Context, from, to common.Address, amount *uint256.Int)

type allowanceKey struct {
	owner   common.Address
	spender common.Address
}

// Ledger is a concurrency-safe PSP22-style ledger.
type Ledger struct {
	id common.Address

	mu          sync.RWMutex
	totalSupply *uint256.Int
	balances    map[common.Address]*uint256.Int
	allowances  map[allowanceKey]*uint256.Int

	taxPercent uint64
	hook       TransferHook
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithTransferTax burns pct percent of every transferred amount, so the
// recipient is credited less than was debited.
func WithTransferTax(pct uint64) Option {
	return func(l *Ledger) {
		if pct > 100 {
			pct = 100
		}
		l.taxPercent = pct
	}
}

// WithTransferHook installs a post-transfer hook.
func WithTransferHook(h TransferHook) Option {
	return func(l *Ledger) {
		l.hook = h
	}
}

// New creates an empty ledger for the asset id.
func New(id common.Address, opts ...Option) *Ledger {
	l := &Ledger{
		id:          id,
		totalSupply: dexmath.Zero(),
		balances:    make(map[common.Address]*uint256.Int),
		allowances:  make(map[allowanceKey]*uint256.Int),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetTransferHook replaces the post-transfer hook. Passing nil removes it.
func (l *Ledger) SetTransferHook(h TransferHook) {
	l.mu.Lock()
	l.hook = h
	l.mu.Unlock()
}

// ID returns the asset identifier.
func (l *Ledger) ID() common.Address {
	return l.id
}

// TotalSupply returns the amount in circulation.
func (l *Ledger) TotalSupply() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalSupply.Clone()
}

// BalanceOf returns the balance of account.
func (l *Ledger) BalanceOf(_ context.Context, account common.Address) (*uint256.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balanceOf(account), nil
}

// Allowance returns how much spender may move on behalf of owner.
func (l *Ledger) Allowance(_ context.Context, owner, spender common.Address) (*uint256.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.allowance(owner, spender), nil
}

// Mint credits amount to account and grows the supply.
func (l *Ledger) Mint(account common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	supply, err := dexmath.Add(l.totalSupply, amount)
	if err != nil {
		return errors.Wrap(err, "mint")
	}
	bal, err := dexmath.Add(l.balanceOf(account), amount)
	if err != nil {
		return errors.Wrap(err, "mint")
	}
	l.totalSupply = supply
	l.setBalance(account, bal)
	return nil
}

// Approve sets the allowance of spender over owner's funds.
func (l *Ledger) Approve(_ context.Context, owner, spender common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if owner == spender {
		return nil
	}
	l.setAllowance(owner, spender, amount)
	return nil
}

// Transfer moves amount from caller to to. Zero amounts and self-transfers
// succeed without effect.
func (l *Ledger) Transfer(ctx context.Context, caller, to common.Address, amount *uint256.Int) error {
	if caller == to || amount.IsZero() {
		return nil
	}

	l.mu.Lock()
	credited, err := l.move(caller, to, amount)
	hook := l.hook
	l.mu.Unlock()
	if err != nil {
		return err
	}

	if hook != nil {
		hook(ctx, caller, to, credited)
	}
	return nil
}

// TransferFrom moves amount from from to to on behalf of caller. The owner
// itself needs no allowance.
func (l *Ledger) TransferFrom(ctx context.Context, caller, from, to common.Address, amount *uint256.Int) error {
	if from == to || amount.IsZero() {
		return nil
	}

	l.mu.Lock()
	credited, err := l.transferFrom(caller, from, to, amount)
	hook := l.hook
	l.mu.Unlock()
	if err != nil {
		return err
	}

	if hook != nil {
		hook(ctx, from, to, credited)
	}
	return nil
}

func (l *Ledger) transferFrom(caller, from, to common.Address, amount *uint256.Int) (*uint256.Int, error) {
	if caller == from {
		return l.move(from, to, amount)
	}

	allowance := l.allowance(from, caller)
	if allowance.Lt(amount) {
		return nil, apperrors.NewAmountError(apperrors.ErrInsufficientAllowance, "allowance", amount, allowance)
	}

	credited, err := l.move(from, to, amount)
	if err != nil {
		return nil, err
	}
	l.setAllowance(from, caller, new(uint256.Int).Sub(allowance, amount))
	return credited, nil
}

// move debits amount from from and credits it, less any tax, to to.
// Callers hold the write lock.
func (l *Ledger) move(from, to common.Address, amount *uint256.Int) (*uint256.Int, error) {
	fromBal := l.balanceOf(from)
	if fromBal.Lt(amount) {
		return nil, apperrors.NewAmountError(apperrors.ErrInsufficientFunds, "balance", amount, fromBal)
	}

	credited := amount.Clone()
	if l.taxPercent > 0 {
		tax, err := dexmath.MulDiv(amount, uint256.NewInt(l.taxPercent), uint256.NewInt(100))
		if err != nil {
			return nil, errors.Wrap(err, "transfer tax")
		}
		credited.Sub(credited, tax)
		l.totalSupply = new(uint256.Int).Sub(l.totalSupply, tax)
	}

	toBal, err := dexmath.Add(l.balanceOf(to), credited)
	if err != nil {
		return nil, errors.Wrap(err, "credit")
	}
	l.setBalance(from, new(uint256.Int).Sub(fromBal, amount))
	l.setBalance(to, toBal)
	return credited, nil
}

func (l *Ledger) balanceOf(account common.Address) *uint256.Int {
	if v, ok := l.balances[account]; ok {
		return v.Clone()
	}
	return dexmath.Zero()
}

func (l *Ledger) allowance(owner, spender common.Address) *uint256.Int {
	if v, ok := l.allowances[allowanceKey{owner, spender}]; ok {
		return v.Clone()
	}
	return dexmath.Zero()
}

func (l *Ledger) setBalance(account common.Address, v *uint256.Int) {
	if v.IsZero() {
		delete(l.balances, account)
		return
	}
	l.balances[account] = v
}

func (l *Ledger) setAllowance(owner, spender common.Address, v *uint256.Int) {
	key := allowanceKey{owner, spender}
	if v.IsZero() {
		delete(l.allowances, key)
		return
	}
	l.allowances[key] = v.Clone()
}
