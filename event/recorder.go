package event

import (
	"sync"

	"github.com/optakt/accrual/reward"
)

// Recorder keeps every event in memory, in emission order.
type Recorder struct {
	mu     sync.Mutex
	events []reward.Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(event reward.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *Recorder) Events() []reward.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]reward.Event, len(r.events))
	copy(events, r.events)
	return events
}

// Filter returns the recorded events of the given type.
func (r *Recorder) Filter(eventType string) []reward.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []reward.Event
	for _, event := range r.events {
		if event.EventType() == eventType {
			events = append(events, event)
		}
	}
	return events
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
