package reward

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/bonus"
	"github.com/optakt/accrual/util"
)

// settle credits the rewards accrued by the user since its last checkpoint,
// using the balance and lock in effect during that window. It must run
// before any mutation of the user's balance or lock.
func (e *Engine) settle(user common.Address, now uint64) error {

	if user == (common.Address{}) {
		return nil
	}

	err := e.updateRewardState(now)
	if err != nil {
		return err
	}

	acc := e.account(user)
	if !acc.Initialized {
		acc.Initialized = true
		acc.RewardIndex = e.global.RewardIndex
		acc.LastUpdate = now
		return nil
	}
	if acc.LastUpdate == now {
		return nil
	}

	delta, err := util.Sub(&e.global.RewardIndex, &acc.RewardIndex)
	if err != nil {
		return fmt.Errorf("user index ahead of reward index: %w", err)
	}

	accrued, err := util.MulDiv(acc.Available(), delta, b.UNIT)
	if err != nil {
		return fmt.Errorf("could not compute staked rewards: %w", err)
	}

	if acc.Lock.Active() && !acc.CurrentBonusRatio.IsZero() {
		ratio, err := bonus.CurrentRatio(&acc.CurrentBonusRatio, &acc.BonusRatioDecrease, now-acc.LastUpdate)
		if err != nil {
			return err
		}
		period, err := bonus.AverageRatio(&acc.CurrentBonusRatio, ratio)
		if err != nil {
			return err
		}
		weighted, err := util.MulDiv(delta, period, b.UNIT)
		if err != nil {
			return fmt.Errorf("could not weight index delta: %w", err)
		}
		locking, err := util.MulDiv(&acc.Lock.Amount, weighted, b.UNIT)
		if err != nil {
			return fmt.Errorf("could not compute locking rewards: %w", err)
		}
		accrued, err = util.Add(accrued, locking)
		if err != nil {
			return fmt.Errorf("could not add locking rewards: %w", err)
		}
		acc.CurrentBonusRatio = *ratio
	}

	claimable, err := util.Add(&acc.Claimable, accrued)
	if err != nil {
		return fmt.Errorf("could not credit rewards: %w", err)
	}

	acc.Claimable = *claimable
	acc.RewardIndex = e.global.RewardIndex
	acc.LastUpdate = now

	return nil
}

// reweigh refreshes the account's contribution to the total weighted supply
// after its balance, lock or bonus ratio changed.
func (e *Engine) reweigh(acc *Account) error {

	weight := acc.Available()
	if acc.Lock.Active() {
		locked, err := util.MulDiv(&acc.Lock.Amount, &acc.CurrentBonusRatio, b.UNIT)
		if err != nil {
			return fmt.Errorf("could not weight locked balance: %w", err)
		}
		weight, err = util.Add(weight, locked)
		if err != nil {
			return fmt.Errorf("could not compute weighted balance: %w", err)
		}
	}

	total, err := util.Sub(&e.global.TotalWeightedSupply, &acc.Weight)
	if err != nil {
		return fmt.Errorf("account weight above total weighted supply: %w", err)
	}
	total, err = util.Add(total, weight)
	if err != nil {
		return fmt.Errorf("could not update total weighted supply: %w", err)
	}

	e.global.TotalWeightedSupply = *total
	acc.Weight = *weight

	return nil
}

// touch settles the user and refreshes its weight, returning the account
// ready for mutation.
func (e *Engine) touch(user common.Address, now uint64) (*Account, error) {

	if user == (common.Address{}) {
		return nil, ErrZeroAddress
	}

	err := e.settle(user, now)
	if err != nil {
		return nil, err
	}

	acc := e.account(user)
	err = e.reweigh(acc)
	if err != nil {
		return nil, err
	}

	return acc, nil
}
