package reward

import (
	"github.com/holiman/uint256"

	"github.com/optakt/accrual/position"
)

// Account is a user's stake together with its reward checkpoint. Weight is
// the bonus-adjusted balance the account contributes to the total weighted
// supply, as of LastUpdate.
type Account struct {
	position.Stake

	Initialized        bool        `json:"initialized"`
	RewardIndex        uint256.Int `json:"rewardIndex"`
	LastUpdate         uint64      `json:"lastUpdate"`
	Claimable          uint256.Int `json:"claimable"`
	CurrentBonusRatio  uint256.Int `json:"currentBonusRatio"`
	BonusRatioDecrease uint256.Int `json:"bonusRatioDecrease"`
	Weight             uint256.Int `json:"weight"`
}

// Global is the state shared by all accounts.
type Global struct {
	RewardIndex         uint256.Int `json:"rewardIndex"`
	LastRewardUpdate    uint64      `json:"lastRewardUpdate"`
	TotalSupply         uint256.Int `json:"totalSupply"`
	TotalLocked         uint256.Int `json:"totalLocked"`
	TotalWeightedSupply uint256.Int `json:"totalWeightedSupply"`
}
