package event

import (
	"github.com/rs/zerolog"

	"github.com/optakt/accrual/reward"
)

// Logger writes each event as a structured log line.
type Logger struct {
	log zerolog.Logger
}

func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Str("component", "events").Logger(),
	}
}

func (l *Logger) Emit(event reward.Event) {

	var entry *zerolog.Event
	switch e := event.(type) {

	case reward.Staked:
		entry = l.log.Info().
			Stringer("user", e.User).
			Stringer("amount", e.Amount).
			Uint64("timestamp", e.Timestamp)

	case reward.Unstaked:
		entry = l.log.Info().
			Stringer("user", e.User).
			Stringer("receiver", e.Receiver).
			Stringer("amount", e.Amount).
			Uint64("timestamp", e.Timestamp)

	case reward.CooldownStarted:
		entry = l.log.Info().
			Stringer("user", e.User).
			Uint64("timestamp", e.Timestamp)

	case reward.Locked:
		entry = l.log.Info().
			Stringer("user", e.User).
			Stringer("amount", e.Amount).
			Uint64("duration", e.Duration).
			Stringer("bonus_ratio", e.BonusRatio).
			Stringer("total_locked", e.TotalLocked).
			Uint64("timestamp", e.Timestamp)

	case reward.Unlocked:
		entry = l.log.Info().
			Stringer("user", e.User).
			Stringer("amount", e.Amount).
			Stringer("total_locked", e.TotalLocked).
			Uint64("timestamp", e.Timestamp)

	case reward.Kicked:
		entry = l.log.Info().
			Stringer("user", e.User).
			Stringer("kicker", e.Kicker).
			Stringer("amount", e.Amount).
			Stringer("penalty", e.Penalty).
			Uint64("timestamp", e.Timestamp)

	case reward.Transferred:
		entry = l.log.Info().
			Stringer("from", e.From).
			Stringer("to", e.To).
			Stringer("amount", e.Amount).
			Uint64("timestamp", e.Timestamp)

	case reward.ClaimRewards:
		entry = l.log.Info().
			Stringer("user", e.User).
			Stringer("amount", e.Amount).
			Uint64("timestamp", e.Timestamp)

	case reward.RewardIndexUpdated:
		entry = l.log.Debug().
			Stringer("index", e.Index).
			Stringer("total_weighted_supply", e.TotalWeightedSupply).
			Uint64("timestamp", e.Timestamp)

	case reward.DropPerSecondUpdated:
		entry = l.log.Info().
			Stringer("drop_per_second", e.DropPerSecond).
			Uint64("last_drop_update", e.LastDropUpdate).
			Uint64("timestamp", e.Timestamp)

	case reward.ParameterUpdated:
		entry = l.log.Info().
			Str("name", e.Name).
			Str("value", e.Value).
			Uint64("timestamp", e.Timestamp)

	default:
		entry = l.log.Warn()
	}

	entry.Str("type", event.EventType()).Msg("event")
}
