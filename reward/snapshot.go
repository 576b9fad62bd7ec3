package reward

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/optakt/accrual/emission"
	"github.com/optakt/accrual/util"
)

// Snapshot is a self-contained copy of the engine state.
type Snapshot struct {
	Params   Params                     `json:"params"`
	Schedule emission.Schedule          `json:"schedule"`
	Global   Global                     `json:"global"`
	Accounts map[common.Address]Account `json:"accounts"`
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	accounts := make(map[common.Address]Account, len(e.accounts))
	for user, acc := range e.accounts {
		accounts[user] = *acc
	}

	return Snapshot{
		Params:   e.params,
		Schedule: e.schedule,
		Global:   e.global,
		Accounts: accounts,
	}
}

// check verifies that the account totals add up to the global totals.
func (s Snapshot) check() error {

	supply, locked, weighted := new(uint256.Int), new(uint256.Int), new(uint256.Int)
	for user, acc := range s.Accounts {
		if user == (common.Address{}) {
			return fmt.Errorf("zero address account: %w", ErrInconsistentSnapshot)
		}
		var err error
		supply, err = util.Add(supply, &acc.Balance)
		if err != nil {
			return fmt.Errorf("could not sum balances (%v): %w", err, ErrInconsistentSnapshot)
		}
		locked, err = util.Add(locked, &acc.Lock.Amount)
		if err != nil {
			return fmt.Errorf("could not sum locks (%v): %w", err, ErrInconsistentSnapshot)
		}
		weighted, err = util.Add(weighted, &acc.Weight)
		if err != nil {
			return fmt.Errorf("could not sum weights (%v): %w", err, ErrInconsistentSnapshot)
		}
	}

	if !supply.Eq(&s.Global.TotalSupply) {
		return fmt.Errorf("balances sum to %s, total supply is %s: %w", supply, &s.Global.TotalSupply, ErrInconsistentSnapshot)
	}
	if !locked.Eq(&s.Global.TotalLocked) {
		return fmt.Errorf("locks sum to %s, total locked is %s: %w", locked, &s.Global.TotalLocked, ErrInconsistentSnapshot)
	}
	if !weighted.Eq(&s.Global.TotalWeightedSupply) {
		return fmt.Errorf("weights sum to %s, total weighted supply is %s: %w", weighted, &s.Global.TotalWeightedSupply, ErrInconsistentSnapshot)
	}

	return nil
}
