package b

import (
	"github.com/holiman/uint256"
)

var (
	E18 = new(uint256.Int).Exp(D10, D18)
)
