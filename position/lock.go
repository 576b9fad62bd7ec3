package position

import (
	"github.com/holiman/uint256"
)

// Lock is the locked part of a staked balance. A zero Duration means the
// balance is not locked.
type Lock struct {
	Amount         uint256.Int `json:"amount"`
	StartTimestamp uint64      `json:"startTimestamp"`
	Duration       uint64      `json:"duration"`
}

func (l Lock) Active() bool {
	return l.Duration != 0
}

func (l Lock) End() uint64 {
	return l.StartTimestamp + l.Duration
}

func (l Lock) Expired(now uint64) bool {
	return now >= l.End()
}

// Kickable reports whether the lock has been left expired for longer than
// the grace delay.
func (l Lock) Kickable(now uint64, delay uint64) bool {
	return l.Active() && now > l.End()+delay
}

// PeriodsPastExpiry counts the whole periods elapsed since the lock ended.
func (l Lock) PeriodsPastExpiry(now uint64, period uint64) uint64 {
	if period == 0 || now <= l.End() {
		return 0
	}
	return (now - l.End()) / period
}

func (l *Lock) Reset() {
	*l = Lock{}
}
