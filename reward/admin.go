package reward

import (
	"fmt"
	"strconv"

	"github.com/holiman/uint256"

	"github.com/optakt/accrual/b"
)

// Administrative setters bring the global state up to now before applying
// the change, so new values only affect accrual after now.

func (e *Engine) SetEndDropPerSecond(rate *uint256.Int, now uint64) error {
	return e.atomic("set end drop per second", func() error {
		err := e.updateRewardState(now)
		if err != nil {
			return err
		}
		err = e.schedule.SetEndDropPerSecond(rate)
		if err != nil {
			return fmt.Errorf("%v: %w", err, ErrInvalidParameter)
		}
		e.params.EndDropPerSecond = *rate
		e.emit(ParameterUpdated{Name: "endDropPerSecond", Value: rate.Dec(), Timestamp: now})
		return nil
	})
}

func (e *Engine) SetStartDropPerSecond(rate *uint256.Int, now uint64) error {
	return e.atomic("set start drop per second", func() error {
		err := e.updateRewardState(now)
		if err != nil {
			return err
		}
		err = e.schedule.SetStartDropPerSecond(rate)
		if err != nil {
			return fmt.Errorf("%v: %w", err, ErrInvalidParameter)
		}
		e.params.StartDropPerSecond = *rate
		e.emit(ParameterUpdated{Name: "startDropPerSecond", Value: rate.Dec(), Timestamp: now})
		return nil
	})
}

// SetLockBonusRatios changes the ratios granted to future locks. Max also
// scales the base drop per second of every balance.
func (e *Engine) SetLockBonusRatios(min *uint256.Int, max *uint256.Int, now uint64) error {
	return e.atomic("set lock bonus ratios", func() error {
		err := e.updateRewardState(now)
		if err != nil {
			return err
		}
		params := e.params.Bonus
		params.Min = *min
		params.Max = *max
		err = params.Validate()
		if err != nil {
			return fmt.Errorf("%v: %w", err, ErrInvalidParameter)
		}
		e.params.Bonus = params
		e.emit(ParameterUpdated{Name: "minLockBonusRatio", Value: min.Dec(), Timestamp: now})
		e.emit(ParameterUpdated{Name: "maxLockBonusRatio", Value: max.Dec(), Timestamp: now})
		return nil
	})
}

func (e *Engine) SetLockDurations(min uint64, max uint64, now uint64) error {
	return e.atomic("set lock durations", func() error {
		params := e.params.Bonus
		params.MinDuration = min
		params.MaxDuration = max
		err := params.Validate()
		if err != nil {
			return fmt.Errorf("%v: %w", err, ErrInvalidParameter)
		}
		e.params.Bonus = params
		e.emit(ParameterUpdated{Name: "minLockDuration", Value: strconv.FormatUint(min, 10), Timestamp: now})
		e.emit(ParameterUpdated{Name: "maxLockDuration", Value: strconv.FormatUint(max, 10), Timestamp: now})
		return nil
	})
}

func (e *Engine) SetKickRatio(bps uint64, now uint64) error {
	return e.atomic("set kick ratio", func() error {
		if bps > b.MAX_BPS.Uint64() {
			return fmt.Errorf("kick ratio %d above %s bps: %w", bps, b.MAX_BPS, ErrInvalidParameter)
		}
		e.params.KickRatioPerWeek = bps
		e.emit(ParameterUpdated{Name: "kickRatioPerWeek", Value: strconv.FormatUint(bps, 10), Timestamp: now})
		return nil
	})
}
