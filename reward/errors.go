package reward

import (
	"errors"

	"github.com/optakt/accrual/bonus"
)

var (
	ErrInvalidAmount          = errors.New("reward: invalid amount")
	ErrInvalidDuration        = bonus.ErrInvalidDuration
	ErrInvalidParameter       = errors.New("reward: invalid parameter")
	ErrInvalidTimestamp       = errors.New("reward: timestamp before last update")
	ErrZeroAddress            = errors.New("reward: zero address")
	ErrSelfTransfer           = errors.New("reward: transfer to self")
	ErrInsufficientBalance    = errors.New("reward: insufficient balance")
	ErrAvailableBalanceTooLow = errors.New("reward: available balance too low")
	ErrInsufficientCooldown   = errors.New("reward: cooldown not elapsed")
	ErrUnstakePeriodExpired   = errors.New("reward: unstake period expired")
	ErrNotLocked              = errors.New("reward: not locked")
	ErrLockNotExpired         = errors.New("reward: lock not expired")
	ErrSmallerAmount          = errors.New("reward: smaller lock amount")
	ErrSmallerDuration        = errors.New("reward: smaller lock duration")
	ErrCannotBeKicked         = errors.New("reward: lock cannot be kicked yet")
	ErrCannotSelfKick         = errors.New("reward: cannot kick self")
	ErrInconsistentSnapshot   = errors.New("reward: inconsistent snapshot")
)
