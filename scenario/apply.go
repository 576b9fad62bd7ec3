package scenario

import (
	"fmt"
	"strconv"

	"github.com/optakt/accrual/reward"
	"github.com/optakt/accrual/token"
)

// Apply executes the action at genesis + Offset. Mints go to the token
// ledger, everything else to the engine.
func (a Action) Apply(engine *reward.Engine, ledger *token.Ledger, genesis uint64) error {

	now := genesis + a.Offset

	switch a.Op {

	case OpMint:
		return ledger.Mint(a.User, a.Amount)

	case OpStake:
		return engine.Stake(a.User, a.Amount, now)

	case OpCooldown:
		return engine.Cooldown(a.User, now)

	case OpUnstake:
		receiver := a.User
		if a.Arg != "" {
			var err error
			receiver, err = address(a.Arg)
			if err != nil {
				return err
			}
		}
		_, err := engine.Unstake(a.User, a.Amount, receiver, now)
		return err

	case OpLock:
		duration, err := strconv.ParseUint(a.Arg, 10, 64)
		if err != nil {
			return fmt.Errorf("could not parse lock duration: %w", err)
		}
		return engine.Lock(a.User, a.Amount, duration, now)

	case OpUnlock:
		return engine.Unlock(a.User, now)

	case OpKick:
		kicker, err := address(a.Arg)
		if err != nil {
			return err
		}
		return engine.Kick(a.User, kicker, now)

	case OpTransfer:
		to, err := address(a.Arg)
		if err != nil {
			return err
		}
		return engine.Transfer(a.User, to, a.Amount, now)

	case OpClaim:
		_, err := engine.Claim(a.User, a.Amount, now)
		return err

	case OpUpdate:
		return engine.UpdateUserRewardState(a.User, now)

	default:
		return fmt.Errorf("unknown operation %q", a.Op)
	}
}
