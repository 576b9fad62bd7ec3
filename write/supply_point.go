package write

import (
	"time"

	"github.com/holiman/uint256"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/optakt/accrual/b"
)

func SupplyPoint(timestamp time.Time, total *uint256.Int, locked *uint256.Int, weighted *uint256.Int, outbound Writer) {

	tags := map[string]string{
		"size": size(total),
	}
	fields := map[string]interface{}{
		"total_supply":          b.ToFloat(total, 18),
		"total_locked":          b.ToFloat(locked, 18),
		"total_weighted_supply": b.ToFloat(weighted, 18),
	}

	point := write.NewPoint("supply", tags, fields, timestamp)
	outbound.WritePoint(point)
}
