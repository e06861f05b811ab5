package utils

import (
	"errors"
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// ParseAmount parses a positive decimal token amount.
func ParseAmount(s string) (sdkmath.Uint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return sdkmath.Uint{}, errors.New("amount is required")
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return sdkmath.Uint{}, fmt.Errorf("invalid amount %q", s)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return sdkmath.Uint{}, fmt.Errorf("invalid amount %q", s)
		}
	}

	amount, err := sdkmath.ParseUint(s)
	if err != nil {
		return sdkmath.Uint{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if amount.IsZero() {
		return sdkmath.Uint{}, errors.New("amount must be positive")
	}
	return amount, nil
}

// Contains checks if a slice contains a specific element
func Contains[T comparable](slice []T, item T) bool {
	for _, elem := range slice {
		if elem == item {
			return true
		}
	}
	return false
}
