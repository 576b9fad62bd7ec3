package reward

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const (
	TypeStaked               = "reward.staked"
	TypeUnstaked             = "reward.unstaked"
	TypeCooldownStarted      = "reward.cooldown"
	TypeLocked               = "reward.locked"
	TypeUnlocked             = "reward.unlocked"
	TypeKicked               = "reward.kicked"
	TypeTransferred          = "reward.transferred"
	TypeClaimRewards         = "reward.claimed"
	TypeRewardIndexUpdated   = "reward.index"
	TypeDropPerSecondUpdated = "reward.drop"
	TypeParameterUpdated     = "reward.parameter"
)

// Event is emitted by the engine once the operation that produced it has
// been committed.
type Event interface {
	EventType() string
}

type Emitter interface {
	Emit(event Event)
}

type Staked struct {
	User      common.Address
	Amount    *uint256.Int
	Timestamp uint64
}

func (Staked) EventType() string { return TypeStaked }

type Unstaked struct {
	User      common.Address
	Receiver  common.Address
	Amount    *uint256.Int
	Timestamp uint64
}

func (Unstaked) EventType() string { return TypeUnstaked }

type CooldownStarted struct {
	User      common.Address
	Timestamp uint64
}

func (CooldownStarted) EventType() string { return TypeCooldownStarted }

type Locked struct {
	User        common.Address
	Amount      *uint256.Int
	Duration    uint64
	BonusRatio  *uint256.Int
	TotalLocked *uint256.Int
	Timestamp   uint64
}

func (Locked) EventType() string { return TypeLocked }

type Unlocked struct {
	User        common.Address
	Amount      *uint256.Int
	TotalLocked *uint256.Int
	Timestamp   uint64
}

func (Unlocked) EventType() string { return TypeUnlocked }

type Kicked struct {
	User      common.Address
	Kicker    common.Address
	Amount    *uint256.Int
	Penalty   *uint256.Int
	Timestamp uint64
}

func (Kicked) EventType() string { return TypeKicked }

type Transferred struct {
	From      common.Address
	To        common.Address
	Amount    *uint256.Int
	Timestamp uint64
}

func (Transferred) EventType() string { return TypeTransferred }

// ClaimRewards carries the amount actually paid, which is capped by the
// claimable balance.
type ClaimRewards struct {
	User      common.Address
	Amount    *uint256.Int
	Timestamp uint64
}

func (ClaimRewards) EventType() string { return TypeClaimRewards }

type RewardIndexUpdated struct {
	Index               *uint256.Int
	TotalWeightedSupply *uint256.Int
	Timestamp           uint64
}

func (RewardIndexUpdated) EventType() string { return TypeRewardIndexUpdated }

type DropPerSecondUpdated struct {
	DropPerSecond  *uint256.Int
	LastDropUpdate uint64
	Timestamp      uint64
}

func (DropPerSecondUpdated) EventType() string { return TypeDropPerSecondUpdated }

type ParameterUpdated struct {
	Name      string
	Value     string
	Timestamp uint64
}

func (ParameterUpdated) EventType() string { return TypeParameterUpdated }

type discard struct{}

func (discard) Emit(Event) {}
