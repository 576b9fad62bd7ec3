package write

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/reward"
)

func AccountPoint(timestamp time.Time, user common.Address, account reward.Account, outbound Writer) {

	locked := "no"
	if account.Lock.Active() {
		locked = "yes"
	}

	tags := map[string]string{
		"user":   user.Hex(),
		"size":   size(&account.Balance),
		"locked": locked,
	}
	fields := map[string]interface{}{
		"balance":     b.ToFloat(&account.Balance, 18),
		"available":   b.ToFloat(account.Available(), 18),
		"locked":      b.ToFloat(&account.Lock.Amount, 18),
		"claimable":   b.ToFloat(&account.Claimable, 18),
		"bonus_ratio": b.ToFloat(&account.CurrentBonusRatio, 18),
		"weight":      b.ToFloat(&account.Weight, 18),
	}

	point := write.NewPoint("accounts", tags, fields, timestamp)
	outbound.WritePoint(point)
}
