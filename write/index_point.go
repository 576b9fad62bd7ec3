package write

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/reward"
)

func IndexPoint(timestamp time.Time, update reward.RewardIndexUpdated, outbound Writer) {

	tags := map[string]string{
		"size": size(update.TotalWeightedSupply),
	}
	fields := map[string]interface{}{
		"index":                 b.ToFloat(update.Index, 18),
		"total_weighted_supply": b.ToFloat(update.TotalWeightedSupply, 18),
	}

	point := write.NewPoint("index", tags, fields, timestamp)
	outbound.WritePoint(point)
}
