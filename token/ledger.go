package token

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/optakt/accrual/util"
)

var (
	ErrInsufficientBalance = errors.New("token: transfer amount exceeds balance")
	ErrZeroAddress         = errors.New("token: zero address")
)

type Ledger struct {
	mu       sync.RWMutex
	balances map[common.Address]*uint256.Int
	supply   uint256.Int
}

func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[common.Address]*uint256.Int),
	}
}

func (l *Ledger) Mint(to common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if to == (common.Address{}) {
		return ErrZeroAddress
	}

	supply, err := util.Add(&l.supply, amount)
	if err != nil {
		return fmt.Errorf("could not mint: %w", err)
	}
	balance, err := util.Add(l.balance(to), amount)
	if err != nil {
		return fmt.Errorf("could not mint: %w", err)
	}

	l.supply = *supply
	l.balances[to] = balance

	return nil
}

func (l *Ledger) Transfer(from common.Address, to common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if from == (common.Address{}) || to == (common.Address{}) {
		return ErrZeroAddress
	}

	debited, err := util.Sub(l.balance(from), amount)
	if err != nil {
		return fmt.Errorf("%s has %s, needs %s: %w", from, l.balance(from), amount, ErrInsufficientBalance)
	}
	l.balances[from] = debited

	credited, err := util.Add(l.balance(to), amount)
	if err != nil {
		return fmt.Errorf("could not credit transfer: %w", err)
	}
	l.balances[to] = credited

	return nil
}

func (l *Ledger) BalanceOf(owner common.Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balance(owner).Clone()
}

func (l *Ledger) TotalSupply() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.supply.Clone()
}

func (l *Ledger) balance(owner common.Address) *uint256.Int {
	balance, ok := l.balances[owner]
	if !ok {
		return new(uint256.Int)
	}
	return balance
}
