// Package reward implements the staking reward accrual engine: a global
// reward index fed by a decreasing emission schedule and shared among
// stakers in proportion to their bonus-weighted balances.
package reward

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/optakt/accrual/emission"
)

// Token moves the underlying tokens on behalf of the engine.
type Token interface {
	Transfer(from common.Address, to common.Address, amount *uint256.Int) error
}

// Engine serialises every operation behind a single mutex. Operations are
// atomic: on error, all state touched by the call is rolled back and no event
// is emitted.
type Engine struct {
	mu sync.Mutex

	log     zerolog.Logger
	token   Token
	emitter Emitter

	params   Params
	schedule emission.Schedule
	global   Global
	accounts map[common.Address]*Account

	journal *journal
}

func New(params Params, genesis uint64, token Token, emitter Emitter, log zerolog.Logger) (*Engine, error) {

	err := params.Validate()
	if err != nil {
		return nil, err
	}

	schedule, err := emission.New(&params.StartDropPerSecond, &params.EndDropPerSecond, params.DropDecreaseDuration, genesis)
	if err != nil {
		return nil, fmt.Errorf("could not create emission schedule: %w", err)
	}

	snapshot := Snapshot{
		Params:   params,
		Schedule: *schedule,
		Global:   Global{LastRewardUpdate: genesis},
	}

	return Restore(snapshot, token, emitter, log)
}

// Restore rebuilds an engine from a snapshot taken with Snapshot.
func Restore(snapshot Snapshot, token Token, emitter Emitter, log zerolog.Logger) (*Engine, error) {

	err := snapshot.Params.Validate()
	if err != nil {
		return nil, err
	}
	err = snapshot.check()
	if err != nil {
		return nil, err
	}

	if emitter == nil {
		emitter = discard{}
	}

	e := Engine{
		log:      log.With().Str("component", "reward").Logger(),
		token:    token,
		emitter:  emitter,
		params:   snapshot.Params,
		schedule: snapshot.Schedule,
		global:   snapshot.Global,
		accounts: make(map[common.Address]*Account, len(snapshot.Accounts)),
	}
	for address, account := range snapshot.Accounts {
		account := account
		e.accounts[address] = &account
	}

	return &e, nil
}

// account returns the account of the user, creating it on first touch and
// recording its prior state in the journal.
func (e *Engine) account(user common.Address) *Account {
	acc, ok := e.accounts[user]
	if e.journal != nil {
		e.journal.save(user, acc)
	}
	if !ok {
		acc = &Account{}
		e.accounts[user] = acc
	}
	return acc
}

// lookup returns the account without creating it.
func (e *Engine) lookup(user common.Address) (Account, bool) {
	acc, ok := e.accounts[user]
	if !ok {
		return Account{}, false
	}
	return *acc, true
}

func (e *Engine) emit(event Event) {
	if e.journal != nil {
		e.journal.events = append(e.journal.events, event)
		return
	}
	e.emitter.Emit(event)
}
