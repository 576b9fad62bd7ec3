package util

import (
	"github.com/holiman/uint256"
)

func Mul(x *uint256.Int, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// MulUint64 multiplies by a plain integer such as a duration in seconds.
func MulUint64(x *uint256.Int, y uint64) (*uint256.Int, error) {
	return Mul(x, new(uint256.Int).SetUint64(y))
}
