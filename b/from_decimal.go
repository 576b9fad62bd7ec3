package b

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// FromDecimal scales a human readable amount such as "0.0005" by 10^decimals.
func FromDecimal(s string, decimals int32) (*uint256.Int, error) {

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("could not parse decimal amount: %w", err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("negative amount %q", s)
	}

	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("amount %q has more than %d decimals", s, decimals)
	}

	v, overflow := uint256.FromBig(scaled.BigInt())
	if overflow {
		return nil, fmt.Errorf("amount %q exceeds 256 bits", s)
	}

	return v, nil
}

// MustFromDecimal is FromDecimal for literals known to be valid.
func MustFromDecimal(s string, decimals int32) *uint256.Int {
	v, err := FromDecimal(s, decimals)
	if err != nil {
		panic(err)
	}
	return v
}
