package b

import (
	"github.com/holiman/uint256"
)

var (
	D0     = uint256.NewInt(0)
	D1     = uint256.NewInt(1)
	D2     = uint256.NewInt(2)
	D10    = uint256.NewInt(10)
	D18    = uint256.NewInt(18)
	D10000 = uint256.NewInt(10000)
)
