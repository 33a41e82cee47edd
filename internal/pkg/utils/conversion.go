package utils

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ConvertToInt parses a base-10 integer, returning 0 when s is not a number
func ConvertToInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// ParseBigInt parses a non-negative base-10 or 0x-prefixed hexadecimal integer
func ParseBigInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}

	v, ok := new(big.Int).SetString(s, base)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid non-negative integer %q", s)
	}
	return v, nil
}
