package reward

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/bonus"
)

// Params configure the engine. The emission fields seed the schedule at
// genesis; the rest stay adjustable through the admin setters.
type Params struct {
	StartDropPerSecond   uint256.Int  `json:"startDropPerSecond"`
	EndDropPerSecond     uint256.Int  `json:"endDropPerSecond"`
	DropDecreaseDuration uint64       `json:"dropDecreaseDuration"`
	Bonus                bonus.Params `json:"bonus"`

	CooldownPeriod   uint64 `json:"cooldownPeriod"`
	UnstakePeriod    uint64 `json:"unstakePeriod"`
	UnlockDelay      uint64 `json:"unlockDelay"`
	KickRatioPerWeek uint64 `json:"kickRatioPerWeek"`

	// Vault holds staked tokens, RewardsVault funds claims.
	Vault        common.Address `json:"vault"`
	RewardsVault common.Address `json:"rewardsVault"`
}

func DefaultParams() Params {
	return Params{
		StartDropPerSecond:   *uint256.NewInt(500_000_000_000_000),
		EndDropPerSecond:     *uint256.NewInt(10_000_000_000_000),
		DropDecreaseDuration: 63_115_200,
		Bonus: bonus.Params{
			Base:        *new(uint256.Int).Set(b.UNIT),
			Min:         *new(uint256.Int).Mul(b.D2, b.UNIT),
			Max:         *new(uint256.Int).Mul(uint256.NewInt(6), b.UNIT),
			MinDuration: 3 * b.MONTH,
			MaxDuration: 2 * b.YEAR,
		},
		CooldownPeriod:   10 * b.DAY,
		UnstakePeriod:    2 * b.DAY,
		UnlockDelay:      2 * b.WEEK,
		KickRatioPerWeek: 1000,
		Vault:            common.HexToAddress("0x00000000000000000000000000000000000057a4"),
		RewardsVault:     common.HexToAddress("0x000000000000000000000000000000000000d509"),
	}
}

func (p Params) Validate() error {
	err := p.Bonus.Validate()
	if err != nil {
		return fmt.Errorf("invalid bonus parameters: %w", err)
	}
	if p.CooldownPeriod == 0 || p.UnstakePeriod == 0 || p.UnlockDelay == 0 {
		return fmt.Errorf("cooldown, unstake and unlock periods must be positive: %w", ErrInvalidParameter)
	}
	if p.KickRatioPerWeek > b.MAX_BPS.Uint64() {
		return fmt.Errorf("kick ratio %d above %s bps: %w", p.KickRatioPerWeek, b.MAX_BPS, ErrInvalidParameter)
	}
	if p.Vault == (common.Address{}) || p.RewardsVault == (common.Address{}) {
		return fmt.Errorf("vault addresses required: %w", ErrZeroAddress)
	}
	return nil
}
