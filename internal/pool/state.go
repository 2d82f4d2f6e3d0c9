package pool

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/tradingpair/internal/dexmath"
)

// State is the persisted share ledger and trade counter. Amounts are base-10
// strings.
type State struct {
	TotalShares string                                       `json:"total_shares"`
	Balances    map[common.Address]string                    `json:"balances"`
	Allowances  map[common.Address]map[common.Address]string `json:"allowances,omitempty"`
	TradeCount  int64                                        `json:"trade_count"`
}

// Snapshot copies the pool state.
func (p *Pool) Snapshot() State {
	st := State{
		TotalShares: p.totalShares.Dec(),
		Balances:    make(map[common.Address]string, len(p.balances)),
		Allowances:  make(map[common.Address]map[common.Address]string),
		TradeCount:  p.tradeCount,
	}
	for acc, v := range p.balances {
		st.Balances[acc] = v.Dec()
	}
	for k, v := range p.allowances {
		m, ok := st.Allowances[k.owner]
		if !ok {
			m = make(map[common.Address]string)
			st.Allowances[k.owner] = m
		}
		m[k.spender] = v.Dec()
	}
	return st
}

// Restore replaces the pool state. It rejects a state whose balances do not
// add up to its total.
func (p *Pool) Restore(st State) error {
	total := dexmath.Zero()
	if st.TotalShares != "" {
		v, err := dexmath.Parse(st.TotalShares)
		if err != nil {
			return errors.Wrap(err, "total shares")
		}
		total = v
	}

	sum := dexmath.Zero()
	balances := make(map[common.Address]*uint256.Int, len(st.Balances))
	for acc, s := range st.Balances {
		v, err := dexmath.Parse(s)
		if err != nil {
			return errors.Wrapf(err, "shares of %s", acc.Hex())
		}
		if v.IsZero() {
			continue
		}
		if sum, err = dexmath.Add(sum, v); err != nil {
			return errors.Wrap(err, "sum of shares")
		}
		balances[acc] = v
	}
	if !sum.Eq(total) {
		return errors.Errorf("shares sum to %s, total is %s", sum.Dec(), total.Dec())
	}

	allowances := make(map[allowanceKey]*uint256.Int)
	for owner, m := range st.Allowances {
		for spender, s := range m {
			v, err := dexmath.Parse(s)
			if err != nil {
				return errors.Wrapf(err, "share allowance %s -> %s", owner.Hex(), spender.Hex())
			}
			if !v.IsZero() {
				allowances[allowanceKey{owner, spender}] = v
			}
		}
	}
	if st.TradeCount < 0 {
		return errors.Errorf("negative trade count %d", st.TradeCount)
	}

	p.totalShares = total
	p.balances = balances
	p.allowances = allowances
	p.tradeCount = st.TradeCount
	return nil
}
