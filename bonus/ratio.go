package bonus

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/util"
)

// StartRatio interpolates linearly between Min at MinDuration and Max at
// MaxDuration:
//
//	durationRatio = ((duration - MIN_LOCK_DURATION) * UNIT) / (MAX_LOCK_DURATION - MIN_LOCK_DURATION);
//	startBonusRatio = minLockBonusRatio + (((maxLockBonusRatio - minLockBonusRatio) * durationRatio) / UNIT);
func (p Params) StartRatio(duration uint64) (*uint256.Int, error) {

	if duration < p.MinDuration || duration > p.MaxDuration {
		return nil, fmt.Errorf("duration %d outside [%d, %d]: %w", duration, p.MinDuration, p.MaxDuration, ErrInvalidDuration)
	}

	elapsed := uint256.NewInt(duration - p.MinDuration)
	window := uint256.NewInt(p.MaxDuration - p.MinDuration)
	durationRatio, err := util.MulDiv(elapsed, b.UNIT, window)
	if err != nil {
		return nil, fmt.Errorf("could not compute duration ratio: %w", err)
	}

	spread := new(uint256.Int).Sub(&p.Max, &p.Min)
	bonus, err := util.MulDiv(spread, durationRatio, b.UNIT)
	if err != nil {
		return nil, fmt.Errorf("could not compute bonus spread: %w", err)
	}

	return util.Add(&p.Min, bonus)
}

// DecreaseRate is the per-second decay bringing start down to Base after
// duration seconds.
func (p Params) DecreaseRate(start *uint256.Int, duration uint64) (*uint256.Int, error) {
	if duration == 0 {
		return nil, fmt.Errorf("zero duration: %w", ErrInvalidDuration)
	}
	excess, err := util.Sub(start, &p.Base)
	if err != nil {
		return nil, fmt.Errorf("start ratio %s below base ratio: %w", start, err)
	}
	return excess.Div(excess, uint256.NewInt(duration)), nil
}

// CurrentRatio decays start by rate for elapsed seconds. The decay does not
// stop at Base: an unattended lock keeps losing its weight down to zero.
func CurrentRatio(start *uint256.Int, rate *uint256.Int, elapsed uint64) (*uint256.Int, error) {
	decrease, err := util.MulUint64(rate, elapsed)
	if err != nil {
		return nil, fmt.Errorf("could not compute ratio decrease: %w", err)
	}
	return util.SubFloor(start, decrease), nil
}

// AverageRatio integrates a linear decay between two samples with the
// trapezoid rule. Both samples must lie on the same decay segment.
func AverageRatio(atStart *uint256.Int, atEnd *uint256.Int) (*uint256.Int, error) {
	sum, err := util.Add(atStart, atEnd)
	if err != nil {
		return nil, fmt.Errorf("could not average ratios: %w", err)
	}
	return sum.Div(sum, b.D2), nil
}
