package write

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/reward"
)

func DropPoint(timestamp time.Time, update reward.DropPerSecondUpdated, outbound Writer) {

	tags := map[string]string{}
	fields := map[string]interface{}{
		"drop_per_second":  b.ToFloat(update.DropPerSecond, 18),
		"drop_per_day":     b.ToFloat(update.DropPerSecond, 18) * float64(b.DAY),
		"last_drop_update": int64(update.LastDropUpdate),
	}

	point := write.NewPoint("emission", tags, fields, timestamp)
	outbound.WritePoint(point)
}
