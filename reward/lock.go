package reward

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/position"
	"github.com/optakt/accrual/util"
)

// Lock locks amount of the user's staked balance for duration seconds. An
// existing unexpired lock can only grow: the new amount covers the old one
// and the new end is not earlier. The bonus ratio restarts from the ratio of
// the new duration.
func (e *Engine) Lock(user common.Address, amount *uint256.Int, duration uint64, now uint64) error {
	return e.atomic("lock", func() error {

		if amount.IsZero() {
			return ErrInvalidAmount
		}

		start, err := e.params.Bonus.StartRatio(duration)
		if err != nil {
			return err
		}
		decrease, err := e.params.Bonus.DecreaseRate(start, duration)
		if err != nil {
			return err
		}

		acc, err := e.touch(user, now)
		if err != nil {
			return err
		}

		if amount.Gt(&acc.Balance) {
			return ErrInsufficientBalance
		}
		if acc.Lock.Active() && !acc.Lock.Expired(now) {
			if amount.Lt(&acc.Lock.Amount) {
				return ErrSmallerAmount
			}
			if now+duration < acc.Lock.End() {
				return ErrSmallerDuration
			}
		}

		locked, err := util.Sub(&e.global.TotalLocked, &acc.Lock.Amount)
		if err != nil {
			return fmt.Errorf("could not release previous lock: %w", err)
		}
		locked, err = util.Add(locked, amount)
		if err != nil {
			return fmt.Errorf("could not increase total locked: %w", err)
		}

		e.global.TotalLocked = *locked
		acc.Lock = position.Lock{
			Amount:         *amount,
			StartTimestamp: now,
			Duration:       duration,
		}
		acc.CurrentBonusRatio = *start
		acc.BonusRatioDecrease = *decrease

		err = e.reweigh(acc)
		if err != nil {
			return err
		}

		e.emit(Locked{
			User:        user,
			Amount:      amount.Clone(),
			Duration:    duration,
			BonusRatio:  start.Clone(),
			TotalLocked: locked.Clone(),
			Timestamp:   now,
		})

		return nil
	})
}

// Unlock releases an expired lock.
func (e *Engine) Unlock(user common.Address, now uint64) error {
	return e.atomic("unlock", func() error {

		prev, _ := e.lookup(user)
		if !prev.Lock.Active() {
			return ErrNotLocked
		}
		if !prev.Lock.Expired(now) {
			return ErrLockNotExpired
		}

		acc, err := e.touch(user, now)
		if err != nil {
			return err
		}

		amount, err := e.release(acc)
		if err != nil {
			return err
		}

		e.emit(Unlocked{
			User:        user,
			Amount:      amount,
			TotalLocked: e.global.TotalLocked.Clone(),
			Timestamp:   now,
		})

		return nil
	})
}

// Kick force-unlocks a lock left expired for longer than the unlock delay.
// The user loses KickRatioPerWeek basis points of the locked amount for every
// week since expiry, paid to the kicker.
func (e *Engine) Kick(user common.Address, kicker common.Address, now uint64) error {
	return e.atomic("kick", func() error {

		if kicker == (common.Address{}) {
			return ErrZeroAddress
		}
		if user == kicker {
			return ErrCannotSelfKick
		}

		prev, _ := e.lookup(user)
		if !prev.Lock.Active() {
			return ErrNotLocked
		}
		if !prev.Lock.Kickable(now, e.params.UnlockDelay) {
			return ErrCannotBeKicked
		}

		acc, err := e.touch(user, now)
		if err != nil {
			return err
		}
		receiver, err := e.touch(kicker, now)
		if err != nil {
			return err
		}

		percent := prev.Lock.PeriodsPastExpiry(now, b.WEEK) * e.params.KickRatioPerWeek
		if percent > b.MAX_BPS.Uint64() {
			percent = b.MAX_BPS.Uint64()
		}
		penalty, err := util.MulDiv(&acc.Lock.Amount, uint256.NewInt(percent), b.MAX_BPS)
		if err != nil {
			return fmt.Errorf("could not compute kick penalty: %w", err)
		}
		penalty = util.Min(penalty, &acc.Balance)

		amount, err := e.release(acc)
		if err != nil {
			return err
		}

		cooldown, err := e.receiverCooldown(acc.Cooldown, penalty, receiver, now)
		if err != nil {
			return err
		}
		balance, err := util.Add(&receiver.Balance, penalty)
		if err != nil {
			return fmt.Errorf("could not credit penalty: %w", err)
		}
		receiver.Cooldown = cooldown
		receiver.Balance = *balance
		acc.Balance.Sub(&acc.Balance, penalty)
		if acc.Balance.IsZero() {
			acc.Cooldown = 0
		}

		err = e.reweigh(acc)
		if err != nil {
			return err
		}
		err = e.reweigh(receiver)
		if err != nil {
			return err
		}

		e.emit(Kicked{
			User:      user,
			Kicker:    kicker,
			Amount:    amount,
			Penalty:   penalty.Clone(),
			Timestamp: now,
		})

		return nil
	})
}

// release clears the lock of a settled account and returns the amount that
// was locked.
func (e *Engine) release(acc *Account) (*uint256.Int, error) {

	amount := acc.Lock.Amount.Clone()
	locked, err := util.Sub(&e.global.TotalLocked, amount)
	if err != nil {
		return nil, fmt.Errorf("could not decrease total locked: %w", err)
	}

	e.global.TotalLocked = *locked
	acc.Lock.Reset()
	acc.CurrentBonusRatio.Clear()
	acc.BonusRatioDecrease.Clear()

	err = e.reweigh(acc)
	if err != nil {
		return nil, err
	}

	return amount, nil
}
