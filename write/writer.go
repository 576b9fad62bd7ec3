package write

import (
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Writer is the part of the InfluxDB write API used to send points.
type Writer interface {
	WritePoint(point *write.Point)
}
