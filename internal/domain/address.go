package domain

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// IsValidAddress checks the 20-byte hex address format
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// ParseAddress validates and converts a user supplied address.
// Empty input yields ErrMissingAddress, malformed input ErrInvalidAddress.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return common.Address{}, ErrMissingAddress
	}
	if !IsValidAddress(s) {
		return common.Address{}, ErrInvalidAddress
	}
	return common.HexToAddress(s), nil
}
