package util

import (
	"github.com/holiman/uint256"
)

func Add(x *uint256.Int, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}
