package write

import (
	"time"

	"github.com/optakt/accrual/reward"
)

// Sink writes engine events as points. Parameter updates and cooldowns are
// not written.
type Sink struct {
	outbound Writer
}

func NewSink(outbound Writer) *Sink {
	return &Sink{
		outbound: outbound,
	}
}

func (s *Sink) Emit(event reward.Event) {

	switch e := event.(type) {

	case reward.ClaimRewards:
		ClaimPoint(unix(e.Timestamp), e, s.outbound)

	case reward.RewardIndexUpdated:
		IndexPoint(unix(e.Timestamp), e, s.outbound)

	case reward.DropPerSecondUpdated:
		DropPoint(unix(e.Timestamp), e, s.outbound)

	case reward.Staked:
		ActionPoint(unix(e.Timestamp), "stake", e.User, e.Amount, s.outbound)

	case reward.Unstaked:
		ActionPoint(unix(e.Timestamp), "unstake", e.User, e.Amount, s.outbound)

	case reward.Locked:
		ActionPoint(unix(e.Timestamp), "lock", e.User, e.Amount, s.outbound)

	case reward.Unlocked:
		ActionPoint(unix(e.Timestamp), "unlock", e.User, e.Amount, s.outbound)

	case reward.Kicked:
		ActionPoint(unix(e.Timestamp), "kick", e.User, e.Penalty, s.outbound)

	case reward.Transferred:
		ActionPoint(unix(e.Timestamp), "transfer", e.From, e.Amount, s.outbound)
	}
}

func unix(timestamp uint64) time.Time {
	return time.Unix(int64(timestamp), 0).UTC()
}
