package main

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/optakt/accrual/reward"
	"github.com/optakt/accrual/store"
	"github.com/optakt/accrual/token"
)

// open creates the engine, or restores it when state holds a snapshot, on top
// of a fresh ledger. The ledger is not persisted, so the vaults the engine
// actually uses are funded on every run: the staking vault with the restored
// total supply and the rewards vault with the reserve.
func open(params reward.Params, genesis uint64, reserve *uint256.Int, state *store.Store, emitter reward.Emitter, log zerolog.Logger) (*reward.Engine, *token.Ledger, error) {

	ledger := token.NewLedger()

	var engine *reward.Engine
	snapshot, err := load(state)
	switch {

	case errors.Is(err, store.ErrNotFound):
		engine, err = reward.New(params, genesis, ledger, emitter, log)
		if err != nil {
			return nil, nil, fmt.Errorf("could not create engine: %w", err)
		}
		log.Info().Uint64("genesis", genesis).Msg("engine created")

	case err != nil:
		return nil, nil, fmt.Errorf("could not load state: %w", err)

	default:
		engine, err = reward.Restore(snapshot, ledger, emitter, log)
		if err != nil {
			return nil, nil, fmt.Errorf("could not restore engine: %w", err)
		}
		err = ledger.Mint(engine.Params().Vault, engine.TotalSupply())
		if err != nil {
			return nil, nil, fmt.Errorf("could not fund staking vault: %w", err)
		}
		log.Info().
			Uint64("genesis", engine.StartDropTimestamp()).
			Uint64("last_reward_update", engine.LastRewardUpdate()).
			Int("accounts", len(snapshot.Accounts)).
			Msg("engine restored, configuration parameters ignored")
	}

	err = ledger.Mint(engine.Params().RewardsVault, reserve)
	if err != nil {
		return nil, nil, fmt.Errorf("could not mint reward reserve: %w", err)
	}

	return engine, ledger, nil
}

// load returns the persisted snapshot, or store.ErrNotFound when no state is
// configured or none was saved yet.
func load(state *store.Store) (reward.Snapshot, error) {
	if state == nil {
		return reward.Snapshot{}, store.ErrNotFound
	}
	return state.Load()
}
