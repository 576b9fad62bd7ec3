package position

import (
	"github.com/holiman/uint256"
)

// Stake is a staked balance together with its lock and unstake cooldown.
type Stake struct {
	Balance  uint256.Int `json:"balance"`
	Lock     Lock        `json:"lock"`
	Cooldown uint64      `json:"cooldown"`
}

// Available is the unlocked part of the balance, the only part that can be
// transferred or unstaked.
func (s Stake) Available() *uint256.Int {
	if s.Lock.Amount.Gt(&s.Balance) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(&s.Balance, &s.Lock.Amount)
}
