package reward

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/optakt/accrual/emission"
)

// journal keeps the pre-call state of everything an operation touches.
type journal struct {
	params   Params
	schedule emission.Schedule
	global   Global
	accounts map[common.Address]*Account // nil when created during the call
	events   []Event
}

func (j *journal) save(user common.Address, acc *Account) {
	_, seen := j.accounts[user]
	if seen {
		return
	}
	if acc == nil {
		j.accounts[user] = nil
		return
	}
	prev := *acc
	j.accounts[user] = &prev
}

func (e *Engine) begin() {
	e.journal = &journal{
		params:   e.params,
		schedule: e.schedule,
		global:   e.global,
		accounts: make(map[common.Address]*Account),
	}
}

func (e *Engine) revert() {
	j := e.journal
	e.journal = nil
	e.params = j.params
	e.schedule = j.schedule
	e.global = j.global
	for user, acc := range j.accounts {
		if acc == nil {
			delete(e.accounts, user)
			continue
		}
		e.accounts[user] = acc
	}
}

func (e *Engine) commit() {
	events := e.journal.events
	e.journal = nil
	for _, event := range events {
		e.emitter.Emit(event)
	}
}

// atomic runs op as a single all-or-nothing transaction.
func (e *Engine) atomic(name string, op func() error) error {

	e.mu.Lock()
	defer e.mu.Unlock()

	e.begin()
	err := op()
	if err != nil {
		e.revert()
		e.log.Warn().Err(err).Str("operation", name).Msg("operation rejected")
		return err
	}
	e.commit()

	return nil
}

// simulate runs op against the current state and always rolls it back.
func (e *Engine) simulate(op func() error) error {

	e.mu.Lock()
	defer e.mu.Unlock()

	e.begin()
	defer e.revert()

	return op()
}
