package write

import (
	"github.com/dustin/go-humanize"
	"github.com/holiman/uint256"

	"github.com/optakt/accrual/b"
)

// size renders a token amount as a short SI tag, such as "1.5k".
func size(amount *uint256.Int) string {
	number, suffix := humanize.ComputeSI(b.ToFloat(amount, 18))
	return humanize.Ftoa(number) + suffix
}
