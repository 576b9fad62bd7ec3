package write

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/reward"
)

func ClaimPoint(timestamp time.Time, claim reward.ClaimRewards, outbound Writer) {

	tags := map[string]string{
		"user": claim.User.Hex(),
		"size": size(claim.Amount),
	}
	fields := map[string]interface{}{
		"amount": b.ToFloat(claim.Amount, 18),
	}

	point := write.NewPoint("claims", tags, fields, timestamp)
	outbound.WritePoint(point)
}
