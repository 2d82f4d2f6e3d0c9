package memory

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/tradingpair/internal/dexmath"
)

// State is the persisted form of a Ledger. Amounts are base-10 strings.
type State struct {
	Asset       common.Address                               `json:"asset"`
	TotalSupply string                                       `json:"total_supply"`
	Balances    map[common.Address]string                    `json:"balances"`
	Allowances  map[common.Address]map[common.Address]string `json:"allowances,omitempty"`
}

// Snapshot returns a copy of the ledger state.
func (l *Ledger) Snapshot() State {
	l.mu.RLock()
	defer l.mu.RUnlock()

	st := State{
		Asset:       l.id,
		TotalSupply: l.totalSupply.Dec(),
		Balances:    make(map[common.Address]string, len(l.balances)),
		Allowances:  make(map[common.Address]map[common.Address]string),
	}
	for acc, v := range l.balances {
		st.Balances[acc] = v.Dec()
	}
	for k, v := range l.allowances {
		m, ok := st.Allowances[k.owner]
		if !ok {
			m = make(map[common.Address]string)
			st.Allowances[k.owner] = m
		}
		m[k.spender] = v.Dec()
	}
	return st
}

// Restore replaces the ledger state. The state must belong to the same asset.
func (l *Ledger) Restore(st State) error {
	if st.Asset != l.id {
		return errors.Errorf("state of asset %s restored into ledger %s", st.Asset.Hex(), l.id.Hex())
	}

	supply, err := parseOrZero(st.TotalSupply)
	if err != nil {
		return errors.Wrap(err, "total supply")
	}
	balances := make(map[common.Address]*uint256.Int, len(st.Balances))
	for acc, s := range st.Balances {
		v, err := dexmath.Parse(s)
		if err != nil {
			return errors.Wrapf(err, "balance of %s", acc.Hex())
		}
		if !v.IsZero() {
			balances[acc] = v
		}
	}
	allowances := make(map[allowanceKey]*uint256.Int)
	for owner, m := range st.Allowances {
		for spender, s := range m {
			v, err := dexmath.Parse(s)
			if err != nil {
				return errors.Wrapf(err, "allowance %s -> %s", owner.Hex(), spender.Hex())
			}
			if !v.IsZero() {
				allowances[allowanceKey{owner, spender}] = v
			}
		}
	}

	l.mu.Lock()
	l.totalSupply = supply
	l.balances = balances
	l.allowances = allowances
	l.mu.Unlock()
	return nil
}

func parseOrZero(s string) (*uint256.Int, error) {
	if s == "" {
		return dexmath.Zero(), nil
	}
	return dexmath.Parse(s)
}
