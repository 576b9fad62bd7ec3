package reward

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/optakt/accrual/util"
)

// Stake deposits amount tokens from the user into the vault and credits the
// user's staked balance.
func (e *Engine) Stake(user common.Address, amount *uint256.Int, now uint64) error {
	return e.atomic("stake", func() error {

		if amount.IsZero() {
			return ErrInvalidAmount
		}

		acc, err := e.touch(user, now)
		if err != nil {
			return err
		}

		cooldown, err := e.receiverCooldown(now, amount, acc, now)
		if err != nil {
			return err
		}
		balance, err := util.Add(&acc.Balance, amount)
		if err != nil {
			return fmt.Errorf("could not credit stake: %w", err)
		}
		supply, err := util.Add(&e.global.TotalSupply, amount)
		if err != nil {
			return fmt.Errorf("could not increase total supply: %w", err)
		}

		acc.Cooldown = cooldown
		acc.Balance = *balance
		e.global.TotalSupply = *supply

		err = e.reweigh(acc)
		if err != nil {
			return err
		}

		err = e.token.Transfer(user, e.params.Vault, amount)
		if err != nil {
			return fmt.Errorf("could not pull staked tokens: %w", err)
		}

		e.emit(Staked{User: user, Amount: amount.Clone(), Timestamp: now})

		return nil
	})
}

// Cooldown starts the waiting period after which the user may unstake.
func (e *Engine) Cooldown(user common.Address, now uint64) error {
	return e.atomic("cooldown", func() error {

		if user == (common.Address{}) {
			return ErrZeroAddress
		}
		err := e.updateRewardState(now)
		if err != nil {
			return err
		}
		acc, ok := e.lookup(user)
		if !ok || acc.Balance.IsZero() {
			return ErrInsufficientBalance
		}

		e.account(user).Cooldown = now
		e.emit(CooldownStarted{User: user, Timestamp: now})

		return nil
	})
}

// Unstake burns up to amount of the user's available balance and pays the
// underlying tokens to receiver. It returns the amount actually unstaked.
func (e *Engine) Unstake(user common.Address, amount *uint256.Int, receiver common.Address, now uint64) (*uint256.Int, error) {

	var burned *uint256.Int
	err := e.atomic("unstake", func() error {

		if amount.IsZero() {
			return ErrInvalidAmount
		}
		if receiver == (common.Address{}) {
			return ErrZeroAddress
		}

		prev, _ := e.lookup(user)
		err := e.checkCooldown(prev.Cooldown, now)
		if err != nil {
			return err
		}

		acc, err := e.touch(user, now)
		if err != nil {
			return err
		}

		available := acc.Available()
		if available.IsZero() {
			return ErrAvailableBalanceTooLow
		}
		burned = util.Min(amount, available)

		acc.Balance.Sub(&acc.Balance, burned)
		supply, err := util.Sub(&e.global.TotalSupply, burned)
		if err != nil {
			return fmt.Errorf("could not decrease total supply: %w", err)
		}
		e.global.TotalSupply = *supply
		if acc.Balance.IsZero() {
			acc.Cooldown = 0
		}

		err = e.reweigh(acc)
		if err != nil {
			return err
		}

		err = e.token.Transfer(e.params.Vault, receiver, burned)
		if err != nil {
			return fmt.Errorf("could not pay unstaked tokens: %w", err)
		}

		e.emit(Unstaked{User: user, Receiver: receiver, Amount: burned.Clone(), Timestamp: now})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return burned, nil
}

// checkCooldown enforces the unstake window opening CooldownPeriod after the
// cooldown started and lasting UnstakePeriod.
func (e *Engine) checkCooldown(cooldown uint64, now uint64) error {
	if cooldown == 0 || now <= cooldown+e.params.CooldownPeriod {
		return ErrInsufficientCooldown
	}
	if now-(cooldown+e.params.CooldownPeriod) > e.params.UnstakePeriod {
		return ErrUnstakePeriodExpired
	}
	return nil
}

// receiverCooldown merges the sender's cooldown into the receiver's when
// tokens are received, weighted by amounts:
//
//	if(receiverCooldown == 0) return 0;
//	if(receiverCooldown < minValidCooldown) return 0;
//	if(_senderCooldown < receiverCooldown) return receiverCooldown;
//	return ((amount * _senderCooldown) + (receiverBalance * receiverCooldown)) / (amount + receiverBalance);
func (e *Engine) receiverCooldown(senderCooldown uint64, amount *uint256.Int, receiver *Account, now uint64) (uint64, error) {

	if receiver.Cooldown == 0 {
		return 0, nil
	}

	window := e.params.CooldownPeriod + e.params.UnstakePeriod
	var minValid uint64
	if now > window {
		minValid = now - window
	}
	if receiver.Cooldown < minValid {
		return 0, nil
	}

	if senderCooldown < minValid {
		senderCooldown = now
	}
	if senderCooldown < receiver.Cooldown {
		return receiver.Cooldown, nil
	}

	sent, err := util.MulUint64(amount, senderCooldown)
	if err != nil {
		return 0, fmt.Errorf("could not weight sender cooldown: %w", err)
	}
	held, err := util.MulUint64(&receiver.Balance, receiver.Cooldown)
	if err != nil {
		return 0, fmt.Errorf("could not weight receiver cooldown: %w", err)
	}
	sum, err := util.Add(sent, held)
	if err != nil {
		return 0, fmt.Errorf("could not merge cooldowns: %w", err)
	}
	total, err := util.Add(amount, &receiver.Balance)
	if err != nil {
		return 0, fmt.Errorf("could not merge balances: %w", err)
	}

	return sum.Div(sum, total).Uint64(), nil
}
