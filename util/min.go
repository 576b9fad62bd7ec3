package util

import (
	"github.com/holiman/uint256"
)

func Min(x *uint256.Int, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return new(uint256.Int).Set(x)
	}
	return new(uint256.Int).Set(y)
}
