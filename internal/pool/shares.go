package pool

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/dexmath"
)

type allowanceKey struct {
	owner   common.Address
	spender common.Address
}

// TotalShares returns the number of shares in existence.
func (p *Pool) TotalShares() *uint256.Int {
	return p.totalShares.Clone()
}

// ShareOf returns the shares held by account.
func (p *Pool) ShareOf(account common.Address) *uint256.Int {
	if v, ok := p.balances[account]; ok {
		return v.Clone()
	}
	return dexmath.Zero()
}

// ShareAllowance returns how many of owner's shares spender may move.
func (p *Pool) ShareAllowance(owner, spender common.Address) *uint256.Int {
	if v, ok := p.allowances[allowanceKey{owner, spender}]; ok {
		return v.Clone()
	}
	return dexmath.Zero()
}

// TransferShares moves amount of caller's shares to to. A transfer to oneself
// changes nothing once the balance check passes.
func (p *Pool) TransferShares(caller, to common.Address, amount *uint256.Int) error {
	if err := p.debitCheck(caller, amount); err != nil {
		return err
	}
	if caller == to || amount.IsZero() {
		return nil
	}
	return p.move(caller, to, amount)
}

// ApproveShares lets spender move up to amount of caller's shares, replacing
// any previous approval. The caller must hold at least amount.
func (p *Pool) ApproveShares(caller, spender common.Address, amount *uint256.Int) error {
	if !amount.Lt(dexmath.MaxAmount) {
		return errors.Wrap(apperrors.ErrArithmetic, "approval at the balance limit")
	}
	if err := p.debitCheck(caller, amount); err != nil {
		return err
	}
	p.setAllowance(caller, spender, amount)
	return nil
}

// TransferSharesFrom moves amount of owner's shares to to, spending the
// allowance owner granted caller.
func (p *Pool) TransferSharesFrom(caller, owner, to common.Address, amount *uint256.Int) error {
	allowance := p.ShareAllowance(owner, caller)
	if allowance.Lt(amount) {
		return apperrors.NewAmountError(apperrors.ErrInsufficientAllowance, "share allowance", amount, allowance)
	}
	if err := p.debitCheck(owner, amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	if owner != to {
		if err := p.move(owner, to, amount); err != nil {
			return err
		}
	}
	p.setAllowance(owner, caller, new(uint256.Int).Sub(allowance, amount))
	return nil
}

func (p *Pool) debitCheck(owner common.Address, amount *uint256.Int) error {
	bal := p.ShareOf(owner)
	if bal.Lt(amount) {
		return apperrors.NewAmountError(apperrors.ErrInsufficientFunds, "shares", amount, bal)
	}
	return nil
}

func (p *Pool) move(from, to common.Address, amount *uint256.Int) error {
	fromBal, err := dexmath.Sub(p.ShareOf(from), amount)
	if err != nil {
		return err
	}
	toBal, err := dexmath.Add(p.ShareOf(to), amount)
	if err != nil {
		return err
	}
	p.setBalance(from, fromBal)
	p.setBalance(to, toBal)
	return nil
}

func (p *Pool) mint(to common.Address, amount *uint256.Int) error {
	total, err := dexmath.Add(p.totalShares, amount)
	if err != nil {
		return errors.Wrap(err, "total shares")
	}
	bal, err := dexmath.Add(p.ShareOf(to), amount)
	if err != nil {
		return err
	}
	p.totalShares = total
	p.setBalance(to, bal)
	return nil
}

func (p *Pool) burn(from common.Address, amount *uint256.Int) error {
	if err := p.debitCheck(from, amount); err != nil {
		return err
	}
	total, err := dexmath.Sub(p.totalShares, amount)
	if err != nil {
		return errors.Wrap(err, "total shares")
	}
	p.totalShares = total
	p.setBalance(from, new(uint256.Int).Sub(p.ShareOf(from), amount))
	return nil
}

func (p *Pool) setBalance(account common.Address, v *uint256.Int) {
	if v.IsZero() {
		delete(p.balances, account)
		return
	}
	p.balances[account] = v
}

func (p *Pool) setAllowance(owner, spender common.Address, v *uint256.Int) {
	key := allowanceKey{owner, spender}
	if v.IsZero() {
		delete(p.allowances, key)
		return
	}
	p.allowances[key] = v.Clone()
}
