package event

import (
	"github.com/optakt/accrual/reward"
)

// Fanout forwards every event to each of its emitters in order.
type Fanout []reward.Emitter

func (f Fanout) Emit(event reward.Event) {
	for _, emitter := range f {
		emitter.Emit(event)
	}
}
