package util

import (
	"github.com/holiman/uint256"
)

// MulDiv returns floor(x*y/d) with a 512-bit intermediate product, the same
// contract as the `a * b / UNIT` expressions of the Solidity contracts it
// mirrors, minus their silent truncation of oversized results.
func MulDiv(x *uint256.Int, y *uint256.Int, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, ErrDivisionByZero
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}
