package reward

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/optakt/accrual/util"
)

// Transfer moves staked balance between users. Locked balance cannot be
// transferred. Both sides are settled with their balances prior to the move.
func (e *Engine) Transfer(from common.Address, to common.Address, amount *uint256.Int, now uint64) error {
	return e.atomic("transfer", func() error {

		if amount.IsZero() {
			return ErrInvalidAmount
		}
		if from == to {
			return ErrSelfTransfer
		}

		sender, err := e.touch(from, now)
		if err != nil {
			return err
		}
		receiver, err := e.touch(to, now)
		if err != nil {
			return err
		}

		if sender.Available().Lt(amount) {
			return ErrAvailableBalanceTooLow
		}

		cooldown, err := e.receiverCooldown(sender.Cooldown, amount, receiver, now)
		if err != nil {
			return err
		}
		balance, err := util.Add(&receiver.Balance, amount)
		if err != nil {
			return fmt.Errorf("could not credit transfer: %w", err)
		}

		receiver.Cooldown = cooldown
		receiver.Balance = *balance
		sender.Balance.Sub(&sender.Balance, amount)
		if sender.Balance.IsZero() {
			sender.Cooldown = 0
		}

		err = e.reweigh(sender)
		if err != nil {
			return err
		}
		err = e.reweigh(receiver)
		if err != nil {
			return err
		}

		e.emit(Transferred{From: from, To: to, Amount: amount.Clone(), Timestamp: now})

		return nil
	})
}
