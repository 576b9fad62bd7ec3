package reward

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/optakt/accrual/util"
)

// Claim pays up to amount of the user's settled rewards from the rewards
// vault. Requests above the claimable balance are capped, not rejected. It
// returns the amount paid.
func (e *Engine) Claim(user common.Address, amount *uint256.Int, now uint64) (*uint256.Int, error) {

	var payout *uint256.Int
	err := e.atomic("claim", func() error {

		if amount.IsZero() {
			return ErrInvalidAmount
		}

		acc, err := e.touch(user, now)
		if err != nil {
			return err
		}

		payout = util.Min(amount, &acc.Claimable)
		acc.Claimable.Sub(&acc.Claimable, payout)

		if !payout.IsZero() {
			err = e.token.Transfer(e.params.RewardsVault, user, payout)
			if err != nil {
				return fmt.Errorf("could not pay rewards: %w", err)
			}
		}

		e.emit(ClaimRewards{User: user, Amount: payout.Clone(), Timestamp: now})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return payout, nil
}

// UpdateRewardState advances the global reward index to now.
func (e *Engine) UpdateRewardState(now uint64) error {
	return e.atomic("update reward state", func() error {
		return e.updateRewardState(now)
	})
}

// UpdateUserRewardState settles the user's rewards up to now.
func (e *Engine) UpdateUserRewardState(user common.Address, now uint64) error {
	return e.atomic("update user reward state", func() error {
		if user == (common.Address{}) {
			return e.updateRewardState(now)
		}
		_, err := e.touch(user, now)
		return err
	})
}
