package reward

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/util"
)

// updateRewardState advances the global reward index to now. The drop per
// second is expressed for a balance at the maximum bonus ratio, so the base
// rate of an unweighted unit is currentDropPerSecond / maxLockBonusRatio.
func (e *Engine) updateRewardState(now uint64) error {

	if now < e.global.LastRewardUpdate {
		return fmt.Errorf("now %d, last update %d: %w", now, e.global.LastRewardUpdate, ErrInvalidTimestamp)
	}

	changed, err := e.schedule.Refresh(now)
	if err != nil {
		return fmt.Errorf("could not refresh drop per second: %w", err)
	}
	if changed {
		e.log.Debug().
			Stringer("drop_per_second", &e.schedule.CurrentDropPerSecond).
			Uint64("last_drop_update", e.schedule.LastDropUpdate).
			Msg("drop per second updated")
		e.emit(DropPerSecondUpdated{
			DropPerSecond:  e.schedule.CurrentDropPerSecond.Clone(),
			LastDropUpdate: e.schedule.LastDropUpdate,
			Timestamp:      now,
		})
	}

	if now == e.global.LastRewardUpdate {
		return nil
	}

	elapsed := now - e.global.LastRewardUpdate
	e.global.LastRewardUpdate = now

	if e.global.TotalWeightedSupply.IsZero() {
		return nil
	}

	increase, err := e.indexIncrease(elapsed)
	if err != nil {
		return err
	}
	index, err := util.Add(&e.global.RewardIndex, increase)
	if err != nil {
		return fmt.Errorf("could not advance reward index: %w", err)
	}
	e.global.RewardIndex = *index

	e.log.Debug().
		Stringer("reward_index", index).
		Uint64("elapsed", elapsed).
		Msg("reward index updated")
	e.emit(RewardIndexUpdated{
		Index:               index.Clone(),
		TotalWeightedSupply: e.global.TotalWeightedSupply.Clone(),
		Timestamp:           now,
	})

	return nil
}

func (e *Engine) indexIncrease(elapsed uint64) (*uint256.Int, error) {

	baseDropPerSecond, err := util.MulDiv(&e.schedule.CurrentDropPerSecond, b.UNIT, &e.params.Bonus.Max)
	if err != nil {
		return nil, fmt.Errorf("could not compute base drop per second: %w", err)
	}
	accrued, err := util.MulUint64(baseDropPerSecond, elapsed)
	if err != nil {
		return nil, fmt.Errorf("could not compute accrued amount: %w", err)
	}
	increase, err := util.MulDiv(accrued, b.UNIT, &e.global.TotalWeightedSupply)
	if err != nil {
		return nil, fmt.Errorf("could not compute index increase: %w", err)
	}

	return increase, nil
}
