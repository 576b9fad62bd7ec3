package reward

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/optakt/accrual/position"
)

func (e *Engine) Params() Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

func (e *Engine) RewardIndex() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.global.RewardIndex.Clone()
}

func (e *Engine) LastRewardUpdate() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.global.LastRewardUpdate
}

func (e *Engine) CurrentDropPerSecond() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.schedule.CurrentDropPerSecond.Clone()
}

func (e *Engine) StartDropPerSecond() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.schedule.StartDropPerSecond.Clone()
}

func (e *Engine) EndDropPerSecond() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.schedule.EndDropPerSecond.Clone()
}

func (e *Engine) LastDropUpdate() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.schedule.LastDropUpdate
}

func (e *Engine) StartDropTimestamp() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.schedule.StartTimestamp
}

func (e *Engine) TotalSupply() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.global.TotalSupply.Clone()
}

func (e *Engine) TotalLocked() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.global.TotalLocked.Clone()
}

func (e *Engine) TotalWeightedSupply() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.global.TotalWeightedSupply.Clone()
}

// Account returns a copy of the user's account as of its last settlement.
func (e *Engine) Account(user common.Address) Account {
	e.mu.Lock()
	defer e.mu.Unlock()
	acc, _ := e.lookup(user)
	return acc
}

func (e *Engine) BalanceOf(user common.Address) *uint256.Int {
	acc := e.Account(user)
	return acc.Balance.Clone()
}

func (e *Engine) AvailableBalanceOf(user common.Address) *uint256.Int {
	acc := e.Account(user)
	return acc.Available()
}

func (e *Engine) UserLock(user common.Address) position.Lock {
	return e.Account(user).Lock
}

func (e *Engine) UserCooldown(user common.Address) uint64 {
	return e.Account(user).Cooldown
}

func (e *Engine) UserRewardIndex(user common.Address) *uint256.Int {
	acc := e.Account(user)
	return acc.RewardIndex.Clone()
}

// ClaimableRewards is the settled reward balance. Use EstimateClaimableRewards
// to include rewards accrued since the last settlement.
func (e *Engine) ClaimableRewards(user common.Address) *uint256.Int {
	acc := e.Account(user)
	return acc.Claimable.Clone()
}

func (e *Engine) UserCurrentBonusRatio(user common.Address) *uint256.Int {
	acc := e.Account(user)
	return acc.CurrentBonusRatio.Clone()
}

func (e *Engine) UserBonusRatioDecrease(user common.Address) *uint256.Int {
	acc := e.Account(user)
	return acc.BonusRatioDecrease.Clone()
}

// Users lists every account known to the engine, in address order.
func (e *Engine) Users() []common.Address {
	e.mu.Lock()
	defer e.mu.Unlock()
	users := make([]common.Address, 0, len(e.accounts))
	for user := range e.accounts {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return bytes.Compare(users[i][:], users[j][:]) < 0
	})
	return users
}

// EstimateClaimableRewards returns the claimable rewards a settlement at now
// would produce, without changing any state.
func (e *Engine) EstimateClaimableRewards(user common.Address, now uint64) (*uint256.Int, error) {
	estimate := new(uint256.Int)
	err := e.simulate(func() error {
		err := e.settle(user, now)
		if err != nil {
			return err
		}
		acc, _ := e.lookup(user)
		estimate.Set(&acc.Claimable)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return estimate, nil
}

// EstimateBonusRatio returns the user's bonus ratio as of now, without
// changing any state.
func (e *Engine) EstimateBonusRatio(user common.Address, now uint64) (*uint256.Int, error) {
	estimate := new(uint256.Int)
	err := e.simulate(func() error {
		err := e.settle(user, now)
		if err != nil {
			return err
		}
		acc, _ := e.lookup(user)
		estimate.Set(&acc.CurrentBonusRatio)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return estimate, nil
}
