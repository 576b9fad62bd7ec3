// Package emission implements the monthly-stepped drop-per-second schedule
// that funds the staking rewards.
package emission

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/util"
)

var ErrInvalidParameter = errors.New("emission: invalid parameter")

// Schedule decreases the drop per second linearly from StartDropPerSecond to
// EndDropPerSecond over DecreaseDuration, in whole-month steps.
type Schedule struct {
	StartDropPerSecond   uint256.Int `json:"startDropPerSecond"`
	EndDropPerSecond     uint256.Int `json:"endDropPerSecond"`
	DecreaseDuration     uint64      `json:"decreaseDuration"`
	StartTimestamp       uint64      `json:"startTimestamp"`
	CurrentDropPerSecond uint256.Int `json:"currentDropPerSecond"`
	LastDropUpdate       uint64      `json:"lastDropUpdate"`

	// DecreasePerMonth is fixed when the span is set. Lowering the end rate
	// keeps the step size and only moves the floor.
	DecreasePerMonth uint256.Int `json:"decreasePerMonth"`
	// Dust is the truncation residue of DecreasePerMonth over the schedule.
	Dust uint256.Int `json:"dust"`
}

func New(start *uint256.Int, end *uint256.Int, duration uint64, now uint64) (*Schedule, error) {

	s := Schedule{
		StartDropPerSecond:   *start,
		EndDropPerSecond:     *end,
		DecreaseDuration:     duration,
		StartTimestamp:       now,
		CurrentDropPerSecond: *start,
		LastDropUpdate:       now,
	}

	err := s.span()
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Schedule) span() error {

	if s.DecreaseDuration < b.MONTH {
		return fmt.Errorf("decrease duration %d shorter than a month: %w", s.DecreaseDuration, ErrInvalidParameter)
	}
	if s.EndDropPerSecond.Gt(&s.StartDropPerSecond) {
		return fmt.Errorf("end drop %s above start drop %s: %w", &s.EndDropPerSecond, &s.StartDropPerSecond, ErrInvalidParameter)
	}

	span := new(uint256.Int).Sub(&s.StartDropPerSecond, &s.EndDropPerSecond)
	months := uint256.NewInt(s.DecreaseDuration / b.MONTH)
	s.DecreasePerMonth.DivMod(span, months, &s.Dust)

	return nil
}

// Refresh applies every whole month elapsed since the last drop update and
// reports whether the current rate moved. Partial months are carried over:
// LastDropUpdate advances by whole months only.
func (s *Schedule) Refresh(now uint64) (bool, error) {

	if now < s.LastDropUpdate || now-s.LastDropUpdate < b.MONTH {
		return false, nil
	}

	months := (now - s.LastDropUpdate) / b.MONTH

	next := new(uint256.Int).Set(&s.EndDropPerSecond)
	if s.CurrentDropPerSecond.Gt(&s.EndDropPerSecond) {
		decrease, err := util.MulUint64(&s.DecreasePerMonth, months)
		if err != nil {
			return false, fmt.Errorf("could not compute drop decrease: %w", err)
		}
		gap := new(uint256.Int).Sub(&s.CurrentDropPerSecond, &s.EndDropPerSecond)
		if decrease.Lt(gap) && new(uint256.Int).Sub(gap, decrease).Gt(&s.Dust) {
			next.Sub(&s.CurrentDropPerSecond, decrease)
		}
	}

	changed := !next.Eq(&s.CurrentDropPerSecond)
	s.CurrentDropPerSecond = *next
	s.LastDropUpdate += months * b.MONTH

	return changed, nil
}

// SetEndDropPerSecond moves the floor of the schedule. The rate never
// increases, so the new floor may exceed neither the current nor the start
// rate.
func (s *Schedule) SetEndDropPerSecond(rate *uint256.Int) error {
	if rate.Gt(&s.CurrentDropPerSecond) {
		return fmt.Errorf("end drop %s above current drop %s: %w", rate, &s.CurrentDropPerSecond, ErrInvalidParameter)
	}
	if rate.Gt(&s.StartDropPerSecond) {
		return fmt.Errorf("end drop %s above start drop %s: %w", rate, &s.StartDropPerSecond, ErrInvalidParameter)
	}
	s.EndDropPerSecond = *rate
	return nil
}

// SetStartDropPerSecond changes the schedule span and with it the monthly
// step. The current rate is left untouched.
func (s *Schedule) SetStartDropPerSecond(rate *uint256.Int) error {
	prev := s.StartDropPerSecond
	s.StartDropPerSecond = *rate
	err := s.span()
	if err != nil {
		s.StartDropPerSecond = prev
		return err
	}
	return nil
}
