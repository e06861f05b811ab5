package pkg

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// DefaultAddressPrefix is the human readable part of ledger account addresses.
const DefaultAddressPrefix = "stk"

// ValidateAddress checks that address is a bech32 account address with the
// given human readable prefix and a 20 or 32 byte payload.
func ValidateAddress(address, prefix string) error {
	hrp, bz, err := bech32.DecodeToBase256(address)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", address, err)
	}
	if hrp != prefix {
		return fmt.Errorf("invalid address %q: expected prefix %s, got %s", address, prefix, hrp)
	}
	if len(bz) != 20 && len(bz) != 32 {
		return fmt.Errorf("invalid address %q: unexpected payload length %d", address, len(bz))
	}
	return nil
}

// EncodeAddress builds an account address from its raw bytes.
func EncodeAddress(prefix string, bz []byte) (string, error) {
	return bech32.EncodeFromBase256(prefix, bz)
}
