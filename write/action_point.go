package write

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/optakt/accrual/b"
)

// ActionPoint records a balance-changing user action such as a stake, an
// unstake or a kick.
func ActionPoint(timestamp time.Time, action string, user common.Address, amount *uint256.Int, outbound Writer) {

	tags := map[string]string{
		"action": action,
		"user":   user.Hex(),
		"size":   size(amount),
	}
	fields := map[string]interface{}{
		"amount": b.ToFloat(amount, 18),
	}

	point := write.NewPoint("actions", tags, fields, timestamp)
	outbound.WritePoint(point)
}
