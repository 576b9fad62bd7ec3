// Package bonus models the time-decaying multiplier granted to locked
// balances.
package bonus

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

var (
	ErrInvalidDuration  = errors.New("bonus: invalid lock duration")
	ErrInvalidParameter = errors.New("bonus: invalid parameter")
)

// Params bound the lock bonus ratios and durations. Base is the 1x ratio of
// an unlocked balance; Min and Max are granted to the shortest and longest
// allowed locks.
type Params struct {
	Base        uint256.Int `json:"base"`
	Min         uint256.Int `json:"min"`
	Max         uint256.Int `json:"max"`
	MinDuration uint64      `json:"minDuration"`
	MaxDuration uint64      `json:"maxDuration"`
}

func (p Params) Validate() error {
	if p.Base.IsZero() {
		return fmt.Errorf("zero base ratio: %w", ErrInvalidParameter)
	}
	if p.Min.Lt(&p.Base) || p.Max.Lt(&p.Min) {
		return fmt.Errorf("ratios must satisfy base <= min <= max (%s, %s, %s): %w", &p.Base, &p.Min, &p.Max, ErrInvalidParameter)
	}
	if p.MinDuration == 0 || p.MinDuration >= p.MaxDuration {
		return fmt.Errorf("durations must satisfy 0 < min < max (%d, %d): %w", p.MinDuration, p.MaxDuration, ErrInvalidParameter)
	}
	return nil
}
