package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/bonus"
	"github.com/optakt/accrual/reward"
)

// Params mirrors reward.Params in a human-editable form: amounts and ratios
// are decimal token amounts, durations are seconds. A zero Genesis means the
// engine starts at the current time.
type Params struct {
	Genesis uint64 `yaml:"genesis"`

	StartDropPerSecond   string `yaml:"start_drop_per_second"`
	EndDropPerSecond     string `yaml:"end_drop_per_second"`
	DropDecreaseDuration uint64 `yaml:"drop_decrease_duration"`

	BaseLockBonusRatio string `yaml:"base_lock_bonus_ratio"`
	MinLockBonusRatio  string `yaml:"min_lock_bonus_ratio"`
	MaxLockBonusRatio  string `yaml:"max_lock_bonus_ratio"`
	MinLockDuration    uint64 `yaml:"min_lock_duration"`
	MaxLockDuration    uint64 `yaml:"max_lock_duration"`

	CooldownPeriod   uint64 `yaml:"cooldown_period"`
	UnstakePeriod    uint64 `yaml:"unstake_period"`
	UnlockDelay      uint64 `yaml:"unlock_delay"`
	KickRatioPerWeek uint64 `yaml:"kick_ratio_per_week"`

	Vault        string `yaml:"vault"`
	RewardsVault string `yaml:"rewards_vault"`
}

// Default returns the parameters of the reference deployment.
func Default() Params {
	params := reward.DefaultParams()
	return Params{
		StartDropPerSecond:   "0.0005",
		EndDropPerSecond:     "0.00001",
		DropDecreaseDuration: params.DropDecreaseDuration,
		BaseLockBonusRatio:   "1",
		MinLockBonusRatio:    "2",
		MaxLockBonusRatio:    "6",
		MinLockDuration:      params.Bonus.MinDuration,
		MaxLockDuration:      params.Bonus.MaxDuration,
		CooldownPeriod:       params.CooldownPeriod,
		UnstakePeriod:        params.UnstakePeriod,
		UnlockDelay:          params.UnlockDelay,
		KickRatioPerWeek:     params.KickRatioPerWeek,
		Vault:                params.Vault.Hex(),
		RewardsVault:         params.RewardsVault.Hex(),
	}
}

// Load reads the YAML file at path on top of the defaults. Keys missing from
// the file keep their default value; unknown keys are rejected.
func Load(path string) (Params, error) {

	params := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("could not read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err = dec.Decode(&params)
	if err != nil && !errors.Is(err, io.EOF) {
		return Params{}, fmt.Errorf("could not decode config file: %w", err)
	}

	return params, nil
}

// Reward converts the file parameters into validated engine parameters.
func (p Params) Reward() (reward.Params, error) {

	amounts := []struct {
		name  string
		value string
	}{
		{name: "start_drop_per_second", value: p.StartDropPerSecond},
		{name: "end_drop_per_second", value: p.EndDropPerSecond},
		{name: "base_lock_bonus_ratio", value: p.BaseLockBonusRatio},
		{name: "min_lock_bonus_ratio", value: p.MinLockBonusRatio},
		{name: "max_lock_bonus_ratio", value: p.MaxLockBonusRatio},
	}
	values := make([]*uint256.Int, 0, len(amounts))
	for _, amount := range amounts {
		value, err := b.FromDecimal(amount.value, 18)
		if err != nil {
			return reward.Params{}, fmt.Errorf("could not parse %s: %w", amount.name, err)
		}
		values = append(values, value)
	}

	vault, err := parseAddress("vault", p.Vault)
	if err != nil {
		return reward.Params{}, err
	}
	rewardsVault, err := parseAddress("rewards_vault", p.RewardsVault)
	if err != nil {
		return reward.Params{}, err
	}

	params := reward.Params{
		StartDropPerSecond:   *values[0],
		EndDropPerSecond:     *values[1],
		DropDecreaseDuration: p.DropDecreaseDuration,
		Bonus: bonus.Params{
			Base:        *values[2],
			Min:         *values[3],
			Max:         *values[4],
			MinDuration: p.MinLockDuration,
			MaxDuration: p.MaxLockDuration,
		},
		CooldownPeriod:   p.CooldownPeriod,
		UnstakePeriod:    p.UnstakePeriod,
		UnlockDelay:      p.UnlockDelay,
		KickRatioPerWeek: p.KickRatioPerWeek,
		Vault:            vault,
		RewardsVault:     rewardsVault,
	}

	err = params.Validate()
	if err != nil {
		return reward.Params{}, fmt.Errorf("invalid parameters: %w", err)
	}

	return params, nil
}

func parseAddress(name string, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", name, value)
	}
	return common.HexToAddress(value), nil
}
