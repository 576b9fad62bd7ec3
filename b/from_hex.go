package b

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// FromHex parses a raw big-endian hex quantity, with or without 0x prefix.
// Unlike uint256.FromHex it tolerates leading zeros and odd lengths.
func FromHex(s string) (*uint256.Int, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	bytes, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("could not decode hex quantity: %w", err)
	}
	bytes = trimLeadingZeros(bytes)
	if len(bytes) > 32 {
		return nil, fmt.Errorf("hex quantity exceeds 256 bits")
	}
	return new(uint256.Int).SetBytes(bytes), nil
}

func trimLeadingZeros(bytes []byte) []byte {
	for len(bytes) > 0 && bytes[0] == 0 {
		bytes = bytes[1:]
	}
	return bytes
}
