package b

import (
	"math"

	"github.com/holiman/uint256"
)

func ToFloat(v *uint256.Int, decimals uint) float64 {
	n := v.Float64()
	d := math.Pow(10, float64(decimals))
	f := n / d
	return f
}
