package main

import (
	"time"

	"github.com/optakt/accrual/reward"
	"github.com/optakt/accrual/write"
)

func writeState(timestamp time.Time, engine *reward.Engine, outbound write.Writer) {

	write.SupplyPoint(timestamp, engine.TotalSupply(), engine.TotalLocked(), engine.TotalWeightedSupply(), outbound)

	for _, user := range engine.Users() {
		write.AccountPoint(timestamp, user, engine.Account(user), outbound)
	}
}
